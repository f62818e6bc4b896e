package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studiodesk/internal/domain"
)

type Repository interface {
	CreateExpense(ctx context.Context, e *domain.Expense) error
	ListExpenses(ctx context.Context, from, to *time.Time, limit, offset int) ([]domain.Expense, int64, int64, error)
	DeleteExpense(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Amount   int64
	Note     string
	Category string
	Date     *time.Time
	ActorID  int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Expense, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	date := s.now()
	if in.Date != nil {
		date = *in.Date
	}

	e := &domain.Expense{
		Amount:    in.Amount,
		Note:      in.Note,
		Category:  in.Category,
		Date:      date,
		CreatedBy: in.ActorID,
	}
	if e.Category == "" {
		e.Category = "GENERAL"
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

type ListResult struct {
	Expenses    []domain.Expense `json:"expenses"`
	Total       int64            `json:"total"`
	TotalAmount int64            `json:"totalAmount"`
	Page        int              `json:"page"`
	PageSize    int              `json:"pageSize"`
}

func (s *Service) List(ctx context.Context, from, to *time.Time, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	expenses, total, totalAmount, err := s.repo.ListExpenses(ctx, from, to, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return &ListResult{
		Expenses:    expenses,
		Total:       total,
		TotalAmount: totalAmount,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
