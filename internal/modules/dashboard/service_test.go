package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studiodesk/internal/domain"
	"studiodesk/internal/repository"
)

type fakeRepo struct {
	totals   repository.BookingTotals
	byType   map[domain.PaymentType]int64
	sessions []domain.Booking

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeRepo) AggregateBookingsByStartRange(ctx context.Context, from, to time.Time) (repository.BookingTotals, error) {
	f.gotFrom, f.gotTo = from, to
	return f.totals, nil
}

func (f *fakeRepo) SumPaymentsByType(ctx context.Context, from, to time.Time) (map[domain.PaymentType]int64, error) {
	return f.byType, nil
}

func (f *fakeRepo) ListActiveSessions(ctx context.Context) ([]domain.Booking, error) {
	return f.sessions, nil
}

func TestService_Summary(t *testing.T) {
	repo := &fakeRepo{
		totals: repository.BookingTotals{
			TotalBookings: 3,
			GrossAmount:   6000,
			Discount:      500,
			NetAmount:     5500,
			RentPaid:      4000,
			RentDue:       1500,
		},
		byType: map[domain.PaymentType]int64{
			domain.PaymentRent:       4000,
			domain.PaymentDepositIn:  2000,
			domain.PaymentDepositOut: 800,
			domain.PaymentRefund:     200,
		},
		sessions: []domain.Booking{
			{ID: 1, Status: domain.BookingInSession},
			{ID: 2, Status: domain.BookingInSession},
		},
	}

	svc := NewService(repo)
	now := time.Date(2026, 9, 1, 16, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	summary, err := svc.Summary(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, "2026-09-01", summary.Date)
	assert.Equal(t, int64(3), summary.TotalBookings)
	assert.Equal(t, 2, summary.ActiveSessions)
	assert.Equal(t, int64(6000), summary.GrossAmount)
	assert.Equal(t, int64(500), summary.DiscountGiven)
	assert.Equal(t, int64(4000), summary.RentCollected)
	assert.Equal(t, int64(1500), summary.RentOutstanding)
	assert.Equal(t, int64(2000), summary.DepositsCollected)
	assert.Equal(t, int64(1000), summary.DepositsReturned)
	assert.Len(t, summary.Sessions, 2)

	// Window covers the whole of today.
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, 1, repo.gotTo.Day())
	assert.Equal(t, 23, repo.gotTo.Hour())
}
