package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"studiodesk/internal/domain"
)

type bookingModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	BookingCode     string     `gorm:"column:booking_code;uniqueIndex;size:32"`
	CustomerName    string     `gorm:"column:customer_name"`
	CoupleName      *string    `gorm:"column:couple_name"`
	PhotographyName *string    `gorm:"column:photography_name"`
	Phone           string     `gorm:"column:phone"`
	Persons         int        `gorm:"column:persons"`
	BookingType     string     `gorm:"column:booking_type"`
	SessionType     string     `gorm:"column:session_type"`
	CustomHours     int        `gorm:"column:custom_hours"`
	Hours           int        `gorm:"column:hours"`
	StartTime       time.Time  `gorm:"column:start_time;index"`
	EndTime         time.Time  `gorm:"column:end_time"`
	ActualExitTime  *time.Time `gorm:"column:actual_exit_time"`
	Status          string     `gorm:"column:status;index"`

	SnapshotRate         int64 `gorm:"column:snapshot_rate"`
	SnapshotHalfDayHours int   `gorm:"column:snapshot_half_day_hours"`
	SnapshotFullDayHours int   `gorm:"column:snapshot_full_day_hours"`

	GrossAmount        int64   `gorm:"column:gross_amount"`
	DiscountAmount     int64   `gorm:"column:discount_amount"`
	DiscountReference  *string `gorm:"column:discount_reference"`
	NetAmount          int64   `gorm:"column:net_amount"`
	RentPaid           int64   `gorm:"column:rent_paid"`
	RentDue            int64   `gorm:"column:rent_due"`
	DepositCollected   int64   `gorm:"column:deposit_collected"`
	DepositReturned    int64   `gorm:"column:deposit_returned"`
	AdvanceTokenAmount int64   `gorm:"column:advance_token_amount"`

	CreatedBy int64     `gorm:"column:created_by"`
	Notes     *string   `gorm:"column:notes"`
	Version   int       `gorm:"column:version"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		BookingCode:     m.BookingCode,
		CustomerName:    m.CustomerName,
		CoupleName:      strVal(m.CoupleName),
		PhotographyName: strVal(m.PhotographyName),
		Phone:           m.Phone,
		Persons:         m.Persons,
		BookingType:     domain.BookingType(m.BookingType),
		SessionType:     domain.SessionType(m.SessionType),
		CustomHours:     m.CustomHours,
		Hours:           m.Hours,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		ActualExitTime:  m.ActualExitTime,
		Status:          domain.BookingStatus(m.Status),
		Pricing: domain.PricingSnapshot{
			RatePerPersonPerHour: m.SnapshotRate,
			HalfDayHours:         m.SnapshotHalfDayHours,
			FullDayHours:         m.SnapshotFullDayHours,
		},
		Finance: domain.Finance{
			GrossAmount:        m.GrossAmount,
			DiscountAmount:     m.DiscountAmount,
			DiscountReference:  strVal(m.DiscountReference),
			NetAmount:          m.NetAmount,
			RentPaid:           m.RentPaid,
			RentDue:            m.RentDue,
			DepositCollected:   m.DepositCollected,
			DepositReturned:    m.DepositReturned,
			AdvanceTokenAmount: m.AdvanceTokenAmount,
		},
		CreatedBy: m.CreatedBy,
		Notes:     strVal(m.Notes),
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                   b.ID,
		BookingCode:          b.BookingCode,
		CustomerName:         b.CustomerName,
		CoupleName:           strPtr(b.CoupleName),
		PhotographyName:      strPtr(b.PhotographyName),
		Phone:                b.Phone,
		Persons:              b.Persons,
		BookingType:          string(b.BookingType),
		SessionType:          string(b.SessionType),
		CustomHours:          b.CustomHours,
		Hours:                b.Hours,
		StartTime:            b.StartTime,
		EndTime:              b.EndTime,
		ActualExitTime:       b.ActualExitTime,
		Status:               string(b.Status),
		SnapshotRate:         b.Pricing.RatePerPersonPerHour,
		SnapshotHalfDayHours: b.Pricing.HalfDayHours,
		SnapshotFullDayHours: b.Pricing.FullDayHours,
		GrossAmount:          b.Finance.GrossAmount,
		DiscountAmount:       b.Finance.DiscountAmount,
		DiscountReference:    strPtr(b.Finance.DiscountReference),
		NetAmount:            b.Finance.NetAmount,
		RentPaid:             b.Finance.RentPaid,
		RentDue:              b.Finance.RentDue,
		DepositCollected:     b.Finance.DepositCollected,
		DepositReturned:      b.Finance.DepositReturned,
		AdvanceTokenAmount:   b.Finance.AdvanceTokenAmount,
		CreatedBy:            b.CreatedBy,
		Notes:                strPtr(b.Notes),
		Version:              b.Version,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

func (s *Store) CreateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	m.Version = 1
	tx := s.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (s *Store) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := s.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// UpdateBooking persists the full row guarded by the version the caller
// read. A second writer that committed in between makes this a no-op and
// the caller gets domain.ErrVersionConflict.
func (s *Store) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	m.Version = b.Version + 1
	m.UpdatedAt = time.Now()

	tx := s.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		var cnt int64
		if err := s.db.WithContext(ctx).
			Model(&bookingModel{}).
			Where("id = ?", b.ID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
		return domain.ErrVersionConflict
	}
	b.Version = m.Version
	return nil
}

// LastBookingCode returns the lexicographically greatest code with the
// given prefix, or "" when the day has no bookings yet.
func (s *Store) LastBookingCode(ctx context.Context, prefix string) (string, error) {
	var m bookingModel
	tx := s.db.WithContext(ctx).
		Where("booking_code LIKE ?", prefix+"%").
		Order("booking_code DESC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", tx.Error
	}
	return m.BookingCode, nil
}

func (s *Store) ListBookingsByStartRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := s.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (s *Store) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := s.db.WithContext(ctx).Order("start_time ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (s *Store) ListActiveSessions(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := s.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingInSession)).
		Order("start_time ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// BookingTotals are the per-day ledger aggregates the dashboard shows.
type BookingTotals struct {
	TotalBookings int64
	GrossAmount   int64
	Discount      int64
	NetAmount     int64
	RentPaid      int64
	RentDue       int64
}

func (s *Store) AggregateBookingsByStartRange(ctx context.Context, from, to time.Time) (BookingTotals, error) {
	var t BookingTotals
	q := `
SELECT COUNT(1)                        AS total_bookings,
       COALESCE(SUM(gross_amount), 0)    AS gross_amount,
       COALESCE(SUM(discount_amount), 0) AS discount,
       COALESCE(SUM(net_amount), 0)      AS net_amount,
       COALESCE(SUM(rent_paid), 0)       AS rent_paid,
       COALESCE(SUM(rent_due), 0)        AS rent_due
FROM bookings
WHERE start_time >= ? AND start_time <= ?
`
	tx := s.db.WithContext(ctx).Raw(q, from, to).Scan(&t)
	return t, tx.Error
}
