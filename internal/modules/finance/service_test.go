package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studiodesk/internal/domain"
	"studiodesk/internal/repository"
)

type fakeRepo struct {
	payments []repository.PaymentWithBooking
	expenses []domain.Expense
}

func (f *fakeRepo) ListPaymentsInRange(ctx context.Context, from, to time.Time) ([]repository.PaymentWithBooking, error) {
	return f.payments, nil
}

func (f *fakeRepo) ListExpensesInRange(ctx context.Context, from, to time.Time) ([]domain.Expense, error) {
	return f.expenses, nil
}

func payment(id int64, ptype domain.PaymentType, amount int64, fromDeposit bool, paidAt time.Time) repository.PaymentWithBooking {
	return repository.PaymentWithBooking{
		Payment: domain.Payment{
			ID:          id,
			Type:        ptype,
			Amount:      amount,
			FromDeposit: fromDeposit,
			PaidAt:      paidAt,
		},
		BookingCode:  "HOW-20260901-0001",
		CustomerName: "Ravi",
	}
}

func TestService_Report(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		payments: []repository.PaymentWithBooking{
			payment(1, domain.PaymentRent, 2000, false, day1),
			payment(2, domain.PaymentDepositIn, 1000, false, day1),
			// Rent settled from the held deposit still counts as income.
			payment(3, domain.PaymentRent, 500, true, day2),
			payment(4, domain.PaymentDepositOut, 500, false, day2),
		},
		expenses: []domain.Expense{
			{ID: 1, Amount: 700, Note: "backdrop paper", Category: "SUPPLIES", Date: day1},
		},
	}

	svc := NewService(repo)
	report, err := svc.Report(context.Background(), day1.Add(-time.Hour), day2.Add(time.Hour))
	assert.NoError(t, err)

	assert.Equal(t, int64(2500), report.Stats.TotalIncome)
	assert.Equal(t, int64(700), report.Stats.TotalExpense)
	assert.Equal(t, int64(1800), report.Stats.NetProfit)
	assert.Equal(t, int64(1000), report.Stats.DepositsCollected)
	assert.Equal(t, int64(500), report.Stats.DepositsReturned)
	assert.Equal(t, int64(500), report.Stats.NetDepositFlow)

	// Newest first.
	assert.Len(t, report.RecentTransactions, 5)
	for i := 1; i < len(report.RecentTransactions); i++ {
		assert.False(t, report.RecentTransactions[i-1].Date.Before(report.RecentTransactions[i].Date))
	}

	// Deposit returns show as negative amounts in the feed.
	var refund *Transaction
	for i := range report.RecentTransactions {
		if report.RecentTransactions[i].Type == "DEPOSIT_OUT" {
			refund = &report.RecentTransactions[i]
		}
	}
	assert.NotNil(t, refund)
	assert.Equal(t, int64(-500), refund.Amount)

	assert.Equal(t, []ChartPoint{
		{Date: "2026-09-01", Income: 2000, Expense: 700},
		{Date: "2026-09-02", Income: 500, Expense: 0},
	}, report.ChartData)
}

func TestService_ResolveRange(t *testing.T) {
	now := time.Date(2026, 9, 15, 13, 45, 0, 0, time.UTC)
	svc := NewService(&fakeRepo{})
	svc.now = func() time.Time { return now }

	t.Run("today", func(t *testing.T) {
		from, to, err := svc.ResolveRange("TODAY", "", "")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, 15, to.Day())
		assert.Equal(t, 23, to.Hour())
	})

	t.Run("yesterday", func(t *testing.T) {
		from, to, err := svc.ResolveRange("YESTERDAY", "", "")
		assert.NoError(t, err)
		assert.Equal(t, 14, from.Day())
		assert.Equal(t, 14, to.Day())
	})

	t.Run("default is this month", func(t *testing.T) {
		from, to, err := svc.ResolveRange("", "", "")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.September, to.Month())
		assert.Equal(t, 30, to.Day())
	})

	t.Run("explicit dates win", func(t *testing.T) {
		from, to, err := svc.ResolveRange("TODAY", "2026-08-01", "2026-08-10")
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, 10, to.Day())
	})

	t.Run("bad dates rejected", func(t *testing.T) {
		_, _, err := svc.ResolveRange("", "not-a-date", "2026-08-10")
		assert.Error(t, err)
	})
}
