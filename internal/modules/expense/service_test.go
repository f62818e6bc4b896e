package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"studiodesk/internal/domain"
)

type fakeRepo struct {
	expenses []domain.Expense
	nextID   int64
}

func (f *fakeRepo) CreateExpense(ctx context.Context, e *domain.Expense) error {
	f.nextID++
	e.ID = f.nextID
	f.expenses = append(f.expenses, *e)
	return nil
}

func (f *fakeRepo) ListExpenses(ctx context.Context, from, to *time.Time, limit, offset int) ([]domain.Expense, int64, int64, error) {
	var out []domain.Expense
	var totalAmount int64
	for _, e := range f.expenses {
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		out = append(out, e)
		totalAmount += e.Amount
	}

	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, totalAmount, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, totalAmount, nil
}

func (f *fakeRepo) DeleteExpense(ctx context.Context, id int64) error {
	for i, e := range f.expenses {
		if e.ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestService_Create(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	e, err := svc.Create(context.Background(), CreateInput{
		Amount:  700,
		Note:    "backdrop paper",
		ActorID: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "GENERAL", e.Category)
	assert.Equal(t, 2026, e.Date.Year())
	assert.Equal(t, int64(3), e.CreatedBy)
}

func TestService_Create_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), CreateInput{Amount: 0, Note: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateInput{Amount: -5, Note: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_List_PaginatesAndTotals(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), CreateInput{
			Amount: 100,
			Note:   "supplies",
			Date:   timePtr(base.AddDate(0, 0, i)),
		})
		assert.NoError(t, err)
	}

	result, err := svc.List(context.Background(), nil, nil, 1, 2)
	assert.NoError(t, err)
	assert.Len(t, result.Expenses, 2)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, int64(500), result.TotalAmount)

	// Out-of-range values fall back to sane defaults.
	result, err = svc.List(context.Background(), nil, nil, 0, -1)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
}

func TestService_Delete(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	e, err := svc.Create(context.Background(), CreateInput{Amount: 100, Note: "supplies"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), e.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), e.ID), ErrNotFound)
}

func timePtr(t time.Time) *time.Time { return &t }
