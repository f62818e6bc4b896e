package repository

import (
	"context"
	"time"

	"studiodesk/internal/domain"
)

type paymentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Reference   string    `gorm:"column:reference;uniqueIndex;size:36"`
	BookingID   int64     `gorm:"column:booking_id;index"`
	Type        string    `gorm:"column:type;index"`
	Method      string    `gorm:"column:method"`
	FromDeposit bool      `gorm:"column:from_deposit"`
	Amount      int64     `gorm:"column:amount"`
	PaidAt      time.Time `gorm:"column:paid_at;index"`
	CreatedBy   int64     `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) domain.Payment {
	return domain.Payment{
		ID:          m.ID,
		Reference:   m.Reference,
		BookingID:   m.BookingID,
		Type:        domain.PaymentType(m.Type),
		Method:      domain.PaymentMethod(m.Method),
		FromDeposit: m.FromDeposit,
		Amount:      m.Amount,
		PaidAt:      m.PaidAt,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// CreatePayment appends one journal entry. The journal is append-only:
// no update or delete methods exist on this store.
func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		Reference:   p.Reference,
		BookingID:   p.BookingID,
		Type:        string(p.Type),
		Method:      string(p.Method),
		FromDeposit: p.FromDeposit,
		Amount:      p.Amount,
		PaidAt:      p.PaidAt,
		CreatedBy:   p.CreatedBy,
	}
	tx := s.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = toDomainPayment(m)
	return nil
}

func (s *Store) ListPaymentsByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var rows []paymentModel
	tx := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("paid_at ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainPayment(m))
	}
	return out, nil
}

// PaymentWithBooking is a journal row joined with the booking it belongs
// to, for the finance transaction feed.
type PaymentWithBooking struct {
	Payment      domain.Payment
	BookingCode  string
	CustomerName string
}

func (s *Store) ListPaymentsInRange(ctx context.Context, from, to time.Time) ([]PaymentWithBooking, error) {
	// The model must be a named, exported field: GORM's Scan cannot set
	// fields reached through an unexported anonymous struct field.
	type row struct {
		Payment      paymentModel `gorm:"embedded"`
		BookingCode  string       `gorm:"column:booking_code"`
		CustomerName string       `gorm:"column:customer_name"`
	}

	var rows []row
	tx := s.db.WithContext(ctx).
		Table("payments").
		Select("payments.*, bookings.booking_code, bookings.customer_name").
		Joins("LEFT JOIN bookings ON bookings.id = payments.booking_id").
		Where("payments.paid_at >= ? AND payments.paid_at <= ?", from, to).
		Order("payments.paid_at DESC").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]PaymentWithBooking, 0, len(rows))
	for _, r := range rows {
		out = append(out, PaymentWithBooking{
			Payment:      toDomainPayment(r.Payment),
			BookingCode:  r.BookingCode,
			CustomerName: r.CustomerName,
		})
	}
	return out, nil
}

// SumPaymentsByType aggregates journaled amounts per payment type in the
// window.
func (s *Store) SumPaymentsByType(ctx context.Context, from, to time.Time) (map[domain.PaymentType]int64, error) {
	type row struct {
		Type  string `gorm:"column:type"`
		Total int64  `gorm:"column:total"`
	}

	var rows []row
	tx := s.db.WithContext(ctx).
		Table("payments").
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("paid_at >= ? AND paid_at <= ?", from, to).
		Group("type").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make(map[domain.PaymentType]int64, len(rows))
	for _, r := range rows {
		out[domain.PaymentType(r.Type)] = r.Total
	}
	return out, nil
}
