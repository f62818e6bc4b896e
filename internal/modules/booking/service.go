package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"studiodesk/internal/domain"
	"studiodesk/internal/pkg/metrics"
)

type Service struct {
	repo       Repository
	settings   SettingsSource
	events     EventSink
	log        zerolog.Logger
	codePrefix string
	now        func() time.Time
}

func NewService(repo Repository, settings SettingsSource, events EventSink, log zerolog.Logger, codePrefix string) *Service {
	if codePrefix == "" {
		codePrefix = "HOW"
	}
	return &Service{
		repo:       repo,
		settings:   settings,
		events:     events,
		log:        log,
		codePrefix: codePrefix,
		now:        time.Now,
	}
}

type CreateInput struct {
	BookingType        domain.BookingType
	CustomerName       string
	CoupleName         string
	PhotographyName    string
	Phone              string
	Persons            int
	SessionType        domain.SessionType
	CustomHours        int
	StartTime          time.Time
	DiscountAmount     int64
	DiscountReference  string
	DepositAmount      int64
	InitialRentPayment int64
	AdvanceTokenAmount int64
	PaymentMethod      domain.PaymentMethod
	Notes              string
	ActorID            int64
}

func (in CreateInput) validate() error {
	switch {
	case in.CustomerName == "":
		return fmt.Errorf("%w: customerName is required", ErrValidation)
	case in.Phone == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	case in.Persons <= 0:
		return fmt.Errorf("%w: persons must be positive", ErrValidation)
	case in.StartTime.IsZero():
		return fmt.Errorf("%w: startTime is required", ErrValidation)
	case in.BookingType != domain.BookingWalkIn && in.BookingType != domain.BookingAdvance:
		return fmt.Errorf("%w: unknown booking type %q", ErrValidation, in.BookingType)
	case in.SessionType == domain.SessionCustom && in.CustomHours <= 0:
		return fmt.Errorf("%w: customHours must be positive for CUSTOM sessions", ErrValidation)
	case in.DiscountAmount < 0 || in.DepositAmount < 0 || in.InitialRentPayment < 0 || in.AdvanceTokenAmount < 0:
		return fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}
	return nil
}

// Create prices the session against the current tariff, freezes that
// tariff on the booking, journals any money taken at the desk, and
// persists it all in one transaction. WALK_IN guests are already in the
// studio so they start IN_SESSION; ADVANCE bookings wait in CONFIRMED.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing settings: %w", err)
	}

	hours := resolveHours(in.SessionType, in.CustomHours)
	gross := computeGross(settings.HourlyRate, in.Persons, hours)
	discount := clampDiscount(in.DiscountAmount, gross)
	net := gross - discount

	// ADVANCE bookings count the token as rent paid up front; WALK_IN
	// bookings count the explicit initial payment.
	var rentPaid, advanceToken int64
	if in.BookingType == domain.BookingAdvance {
		advanceToken = in.AdvanceTokenAmount
		rentPaid = advanceToken
	} else {
		rentPaid = in.InitialRentPayment
	}

	status := domain.BookingConfirmed
	if in.BookingType == domain.BookingWalkIn {
		status = domain.BookingInSession
	}

	customHours := 0
	if in.SessionType == domain.SessionCustom {
		customHours = in.CustomHours
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		last, err := s.repo.LastBookingCode(ctx, dayPrefix(s.codePrefix, in.StartTime))
		if err != nil {
			return nil, fmt.Errorf("resolve last booking code: %w", err)
		}

		b := &domain.Booking{
			BookingCode:     buildBookingCode(s.codePrefix, in.StartTime, nextSequence(last)),
			CustomerName:    in.CustomerName,
			CoupleName:      in.CoupleName,
			PhotographyName: in.PhotographyName,
			Phone:           in.Phone,
			Persons:         in.Persons,
			BookingType:     in.BookingType,
			SessionType:     in.SessionType,
			CustomHours:     customHours,
			Hours:           hours,
			StartTime:       in.StartTime,
			EndTime:         in.StartTime.Add(time.Duration(hours) * time.Hour),
			Status:          status,
			Pricing: domain.PricingSnapshot{
				RatePerPersonPerHour: settings.HourlyRate,
				HalfDayHours:         settings.HalfDay.Hours,
				FullDayHours:         settings.FullDay.Hours,
			},
			Finance: domain.Finance{
				GrossAmount:        gross,
				DiscountAmount:     discount,
				DiscountReference:  in.DiscountReference,
				NetAmount:          net,
				RentPaid:           rentPaid,
				RentDue:            net - rentPaid,
				DepositCollected:   in.DepositAmount,
				DepositReturned:    0,
				AdvanceTokenAmount: advanceToken,
			},
			CreatedBy: in.ActorID,
			Notes:     in.Notes,
		}

		err = s.repo.InTx(ctx, func(tx Repository) error {
			if err := tx.CreateBooking(ctx, b); err != nil {
				return err
			}
			if in.DepositAmount > 0 {
				if err := s.journal(ctx, tx, b.ID, domain.PaymentDepositIn, in.PaymentMethod, false, in.DepositAmount, in.ActorID); err != nil {
					return err
				}
			}
			if rentPaid > 0 {
				if err := s.journal(ctx, tx, b.ID, domain.PaymentRent, in.PaymentMethod, false, rentPaid, in.ActorID); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if IsDuplicateKey(err) {
				metrics.CodeConflictRetries.Inc()
				s.log.Warn().Str("booking_code", b.BookingCode).Msg("booking code collision, retrying")
				continue
			}
			return nil, err
		}

		metrics.BookingsCreated.WithLabelValues(string(in.BookingType)).Inc()
		metrics.LifecycleTransitions.WithLabelValues("create", string(b.Status)).Inc()
		if in.DepositAmount > 0 {
			metrics.RecordPayment(string(domain.PaymentDepositIn), in.DepositAmount)
		}
		if rentPaid > 0 {
			metrics.RecordPayment(string(domain.PaymentRent), rentPaid)
		}
		s.log.Info().
			Str("booking_code", b.BookingCode).
			Str("booking_type", string(b.BookingType)).
			Int64("gross", gross).
			Int64("rent_paid", rentPaid).
			Msg("booking created")
		if s.events != nil {
			s.events.BookingCreated(b)
		}
		return b, nil
	}

	return nil, fmt.Errorf("%w: booking code contention, giving up after %d attempts", ErrConflict, maxCodeAttempts)
}

type CheckInInput struct {
	CollectedRent   int64
	SecurityDeposit int64
	PaymentMethod   domain.PaymentMethod
	ActorID         int64
}

// CheckIn admits an ADVANCE booking: journals the rent and deposit taken
// at the door and moves the booking IN_SESSION.
func (s *Service) CheckIn(ctx context.Context, id int64, in CheckInInput) (*domain.Booking, error) {
	if in.CollectedRent < 0 || in.SecurityDeposit < 0 {
		return nil, fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}

	var out *domain.Booking
	err := s.repo.InTx(ctx, func(tx Repository) error {
		b, err := s.getBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if b.BookingType != domain.BookingAdvance {
			return fmt.Errorf("check-in booking %s: only ADVANCE bookings can be checked in: %w", b.BookingCode, ErrInvalidBookingType)
		}
		if b.Status != domain.BookingConfirmed {
			return fmt.Errorf("check-in booking %s in status %s: %w", b.BookingCode, b.Status, ErrInvalidState)
		}

		if in.CollectedRent > 0 {
			if err := s.journal(ctx, tx, b.ID, domain.PaymentRent, in.PaymentMethod, false, in.CollectedRent, in.ActorID); err != nil {
				return err
			}
			b.Finance.RentPaid += in.CollectedRent
		}
		if in.SecurityDeposit > 0 {
			if err := s.journal(ctx, tx, b.ID, domain.PaymentDepositIn, in.PaymentMethod, false, in.SecurityDeposit, in.ActorID); err != nil {
				return err
			}
			b.Finance.DepositCollected += in.SecurityDeposit
		}

		b.Finance.RentDue = b.Finance.NetAmount - b.Finance.RentPaid
		b.Status = domain.BookingInSession

		if err := s.updateBooking(ctx, tx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LifecycleTransitions.WithLabelValues("check_in", string(out.Status)).Inc()
	if in.CollectedRent > 0 {
		metrics.RecordPayment(string(domain.PaymentRent), in.CollectedRent)
	}
	if in.SecurityDeposit > 0 {
		metrics.RecordPayment(string(domain.PaymentDepositIn), in.SecurityDeposit)
	}
	s.log.Info().Str("booking_code", out.BookingCode).Int64("rent_due", out.Finance.RentDue).Msg("booking checked in")
	if s.events != nil {
		s.events.BookingCheckedIn(out)
	}
	return out, nil
}

type EndSessionInput struct {
	ExitTime             *time.Time
	ExtraRentPayment     int64
	DepositReturnAmount  int64
	ManualOvertimeAmount int64
	DiscountAmount       *int64
	DiscountReference    *string
	PaymentMethod        domain.PaymentMethod
	// FromDeposit marks the extra rent as settled by deducting from the
	// held security deposit rather than a fresh payment.
	FromDeposit bool
	ActorID     int64
}

// EndSession checks a guest out. The computed overtime is a suggestion for
// the operator; only the manually entered overtime amount hits the ledger.
// The booking completes only when nothing is left owing.
func (s *Service) EndSession(ctx context.Context, id int64, in EndSessionInput) (*domain.Booking, Overtime, error) {
	if in.ExtraRentPayment < 0 || in.DepositReturnAmount < 0 || in.ManualOvertimeAmount < 0 {
		return nil, Overtime{}, fmt.Errorf("%w: amounts must not be negative", ErrValidation)
	}
	if in.DiscountAmount != nil && *in.DiscountAmount < 0 {
		return nil, Overtime{}, fmt.Errorf("%w: discountAmount must not be negative", ErrValidation)
	}

	var (
		out *domain.Booking
		ot  Overtime
	)
	err := s.repo.InTx(ctx, func(tx Repository) error {
		b, err := s.getBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if b.Status.Terminal() {
			return fmt.Errorf("end session for booking %s already %s: %w", b.BookingCode, b.Status, ErrInvalidState)
		}

		exit := s.now()
		if in.ExitTime != nil {
			exit = *in.ExitTime
		}
		b.ActualExitTime = &exit

		ot = referenceOvertime(b.EndTime, exit, b.Pricing.RatePerPersonPerHour, b.Persons)

		if in.ManualOvertimeAmount > 0 {
			b.Finance.GrossAmount += in.ManualOvertimeAmount
		}

		// A discount supplied at checkout replaces the stored one.
		if in.DiscountAmount != nil {
			b.Finance.DiscountAmount = clampDiscount(*in.DiscountAmount, b.Finance.GrossAmount)
			if in.DiscountReference != nil {
				b.Finance.DiscountReference = *in.DiscountReference
			}
		}

		b.Finance.NetAmount = b.Finance.GrossAmount - b.Finance.DiscountAmount
		b.Finance.RentDue = b.Finance.NetAmount - b.Finance.RentPaid

		if in.ExtraRentPayment > 0 {
			if err := s.journal(ctx, tx, b.ID, domain.PaymentRent, in.PaymentMethod, in.FromDeposit, in.ExtraRentPayment, in.ActorID); err != nil {
				return err
			}
			b.Finance.RentPaid += in.ExtraRentPayment
			b.Finance.RentDue = b.Finance.NetAmount - b.Finance.RentPaid
		}

		if in.DepositReturnAmount > 0 {
			if err := s.journal(ctx, tx, b.ID, domain.PaymentDepositOut, in.PaymentMethod, false, in.DepositReturnAmount, in.ActorID); err != nil {
				return err
			}
			b.Finance.DepositReturned += in.DepositReturnAmount
			if b.Finance.DepositReturned > b.Finance.DepositCollected {
				s.log.Warn().
					Str("booking_code", b.BookingCode).
					Int64("deposit_collected", b.Finance.DepositCollected).
					Int64("deposit_returned", b.Finance.DepositReturned).
					Msg("deposit returned exceeds deposit collected")
			}
		}

		// Checkout does not force completion: an unpaid balance leaves the
		// booking open.
		if b.Finance.RentDue <= 0 {
			b.Status = domain.BookingCompleted
		}

		if err := s.updateBooking(ctx, tx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, Overtime{}, err
	}

	metrics.LifecycleTransitions.WithLabelValues("end_session", string(out.Status)).Inc()
	if in.ExtraRentPayment > 0 {
		metrics.RecordPayment(string(domain.PaymentRent), in.ExtraRentPayment)
	}
	if in.DepositReturnAmount > 0 {
		metrics.RecordPayment(string(domain.PaymentDepositOut), in.DepositReturnAmount)
	}
	s.log.Info().
		Str("booking_code", out.BookingCode).
		Str("status", string(out.Status)).
		Int64("rent_due", out.Finance.RentDue).
		Int("reference_extra_hours", ot.ExtraHours).
		Msg("session ended")
	if s.events != nil {
		s.events.SessionEnded(out, ot)
	}
	return out, ot, nil
}

type UpdateInput struct {
	CustomerName    *string
	CoupleName      *string
	PhotographyName *string
	Phone           *string
	Notes           *string
	Persons         *int
	SessionType     *domain.SessionType
	CustomHours     *int
	StartTime       *time.Time
}

// Update patches a booking before completion. Touching any session
// parameter triggers a full financial recompute at the frozen snapshot
// rate; payments already taken are never adjusted, so rentDue can move
// without new money changing hands. That is the point: it corrects a
// mis-entered booking.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Booking, error) {
	if in.Persons != nil && *in.Persons <= 0 {
		return nil, fmt.Errorf("%w: persons must be positive", ErrValidation)
	}
	if in.CustomHours != nil && *in.CustomHours <= 0 {
		return nil, fmt.Errorf("%w: customHours must be positive", ErrValidation)
	}

	var out *domain.Booking
	err := s.repo.InTx(ctx, func(tx Repository) error {
		b, err := s.getBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if b.Status.Terminal() {
			return fmt.Errorf("update booking %s already %s: %w", b.BookingCode, b.Status, ErrInvalidState)
		}

		if in.CustomerName != nil {
			b.CustomerName = *in.CustomerName
		}
		if in.CoupleName != nil {
			b.CoupleName = *in.CoupleName
		}
		if in.PhotographyName != nil {
			b.PhotographyName = *in.PhotographyName
		}
		if in.Phone != nil {
			b.Phone = *in.Phone
		}
		if in.Notes != nil {
			b.Notes = *in.Notes
		}

		recompute := false
		if in.SessionType != nil && *in.SessionType != b.SessionType {
			b.SessionType = *in.SessionType
			recompute = true
		}
		if in.CustomHours != nil && *in.CustomHours != b.CustomHours {
			b.CustomHours = *in.CustomHours
			recompute = true
		}
		if in.Persons != nil && *in.Persons != b.Persons {
			b.Persons = *in.Persons
			recompute = true
		}
		if in.StartTime != nil && !in.StartTime.Equal(b.StartTime) {
			b.StartTime = *in.StartTime
			recompute = true
		}

		if recompute {
			b.Hours = resolveHours(b.SessionType, b.CustomHours)
			b.EndTime = b.StartTime.Add(time.Duration(b.Hours) * time.Hour)
			// Snapshot rate, never the current settings: historical
			// bookings are immune to tariff changes.
			b.Finance.GrossAmount = computeGross(b.Pricing.RatePerPersonPerHour, b.Persons, b.Hours)
			// The discount is carried over as-is, not rescaled.
			b.Finance.NetAmount = b.Finance.GrossAmount - b.Finance.DiscountAmount
			b.Finance.RentDue = b.Finance.NetAmount - b.Finance.RentPaid
		}

		if err := s.updateBooking(ctx, tx, b); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LifecycleTransitions.WithLabelValues("update", string(out.Status)).Inc()
	if s.events != nil {
		s.events.BookingUpdated(out)
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, s.repo, id)
}

func (s *Service) ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if _, err := s.getBooking(ctx, s.repo, bookingID); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentsByBooking(ctx, bookingID)
}

// TodayBookings lists bookings whose session starts today.
func (s *Service) TodayBookings(ctx context.Context) ([]domain.Booking, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return s.repo.ListBookingsByStartRange(ctx, start, end)
}

func (s *Service) AllBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.repo.ListBookings(ctx)
}

func (s *Service) getBooking(ctx context.Context, tx Repository, id int64) (*domain.Booking, error) {
	b, err := tx.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) updateBooking(ctx context.Context, tx Repository, b *domain.Booking) error {
	if err := tx.UpdateBooking(ctx, b); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return fmt.Errorf("booking %s was modified concurrently: %w", b.BookingCode, ErrConflict)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("booking %d: %w", b.ID, ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *Service) journal(ctx context.Context, tx Repository, bookingID int64, ptype domain.PaymentType, method domain.PaymentMethod, fromDeposit bool, amount int64, actor int64) error {
	if method == "" {
		method = domain.MethodCash
	}
	p := &domain.Payment{
		Reference:   uuid.NewString(),
		BookingID:   bookingID,
		Type:        ptype,
		Method:      method,
		FromDeposit: fromDeposit,
		Amount:      amount,
		PaidAt:      s.now(),
		CreatedBy:   actor,
	}
	return tx.CreatePayment(ctx, p)
}
