package dashboard

import (
	"context"
	"fmt"
	"time"

	"studiodesk/internal/domain"
	"studiodesk/internal/repository"
)

type Repository interface {
	AggregateBookingsByStartRange(ctx context.Context, from, to time.Time) (repository.BookingTotals, error)
	SumPaymentsByType(ctx context.Context, from, to time.Time) (map[domain.PaymentType]int64, error)
	ListActiveSessions(ctx context.Context) ([]domain.Booking, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type Summary struct {
	Date              string           `json:"date"`
	TotalBookings     int64            `json:"totalBookings"`
	ActiveSessions    int              `json:"activeSessions"`
	GrossAmount       int64            `json:"grossAmount"`
	DiscountGiven     int64            `json:"discountGiven"`
	NetAmount         int64            `json:"netAmount"`
	RentCollected     int64            `json:"rentCollected"`
	RentOutstanding   int64            `json:"rentOutstanding"`
	DepositsCollected int64            `json:"depositsCollected"`
	DepositsReturned  int64            `json:"depositsReturned"`
	Sessions          []domain.Booking `json:"sessions"`
}

// Summary is the desk's at-a-glance view for today: bookings that start
// today plus money that actually moved today, regardless of which day
// the paying booking started.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)

	totals, err := s.repo.AggregateBookingsByStartRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings: %w", err)
	}

	byType, err := s.repo.SumPaymentsByType(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	sessions, err := s.repo.ListActiveSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	return &Summary{
		Date:              from.Format("2006-01-02"),
		TotalBookings:     totals.TotalBookings,
		ActiveSessions:    len(sessions),
		GrossAmount:       totals.GrossAmount,
		DiscountGiven:     totals.Discount,
		NetAmount:         totals.NetAmount,
		RentCollected:     byType[domain.PaymentRent],
		RentOutstanding:   totals.RentDue,
		DepositsCollected: byType[domain.PaymentDepositIn],
		DepositsReturned:  byType[domain.PaymentDepositOut] + byType[domain.PaymentRefund],
		Sessions:          sessions,
	}, nil
}
