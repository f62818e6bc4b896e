package booking

import (
	"context"
	"time"

	"studiodesk/internal/domain"
)

// Repository is the persistence the lifecycle state machine needs. InTx
// hands back a Repository bound to one transaction; every lifecycle
// operation does all of its writes through that.
type Repository interface {
	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, b *domain.Booking) error
	LastBookingCode(ctx context.Context, prefix string) (string, error)
	ListBookingsByStartRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListPaymentsByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	CreatePayment(ctx context.Context, p *domain.Payment) error
	InTx(ctx context.Context, fn func(Repository) error) error
}

// SettingsSource resolves the current tariff once per create/update; the
// booking then only ever sees its frozen snapshot.
type SettingsSource interface {
	GetSettings(ctx context.Context) (*domain.PricingSettings, error)
}

// EventSink receives lifecycle notifications after a successful commit.
// Used to push live updates to connected desk terminals.
type EventSink interface {
	BookingCreated(b *domain.Booking)
	BookingCheckedIn(b *domain.Booking)
	SessionEnded(b *domain.Booking, ot Overtime)
	BookingUpdated(b *domain.Booking)
}
