package domain

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingInSession BookingStatus = "IN_SESSION"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether no further financial mutation is permitted.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type BookingType string

const (
	BookingWalkIn  BookingType = "WALK_IN"
	BookingAdvance BookingType = "ADVANCE"
)

type SessionType string

const (
	SessionOneHour   SessionType = "ONE_HOUR"
	SessionTwoHour   SessionType = "TWO_HOUR"
	SessionThreeHour SessionType = "THREE_HOUR"
	SessionHalfDay   SessionType = "HALF_DAY"
	SessionFullDay   SessionType = "FULL_DAY"
	SessionCustom    SessionType = "CUSTOM"
)

// ErrVersionConflict is returned by the store when an optimistic version
// check fails, i.e. another operation committed first.
var ErrVersionConflict = errors.New("booking version conflict")

// PricingSnapshot freezes the rates a booking was priced with. Overtime and
// later edits always bill against the snapshot, never the current settings.
type PricingSnapshot struct {
	RatePerPersonPerHour int64 `json:"ratePerPersonPerHour"`
	HalfDayHours         int   `json:"halfDayHours"`
	FullDayHours         int   `json:"fullDayHours"`
}

// Finance is the booking ledger. All amounts are whole rupees.
//
// Invariants after every lifecycle operation:
//
//	NetAmount == GrossAmount - DiscountAmount (discount clamped to [0, gross])
//	RentDue   == NetAmount - RentPaid         (negative means refund owed)
//
// RentPaid, DepositCollected and DepositReturned only ever grow, each by a
// successful payment-journal append of the matching type.
type Finance struct {
	GrossAmount        int64  `json:"grossAmount"`
	DiscountAmount     int64  `json:"discountAmount"`
	DiscountReference  string `json:"discountReference,omitempty"`
	NetAmount          int64  `json:"netAmount"`
	RentPaid           int64  `json:"rentPaid"`
	RentDue            int64  `json:"rentDue"`
	DepositCollected   int64  `json:"depositCollected"`
	DepositReturned    int64  `json:"depositReturned"`
	AdvanceTokenAmount int64  `json:"advanceTokenAmount"`
}

type Booking struct {
	ID              int64           `json:"id"`
	BookingCode     string          `json:"bookingCode"`
	CustomerName    string          `json:"customerName"`
	CoupleName      string          `json:"coupleName,omitempty"`
	PhotographyName string          `json:"photographyName,omitempty"`
	Phone           string          `json:"phone"`
	Persons         int             `json:"persons"`
	BookingType     BookingType     `json:"bookingType"`
	SessionType     SessionType     `json:"sessionType"`
	CustomHours     int             `json:"customHours,omitempty"`
	Hours           int             `json:"hours"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	ActualExitTime  *time.Time      `json:"actualExitTime,omitempty"`
	Status          BookingStatus   `json:"status"`
	Pricing         PricingSnapshot `json:"pricingSnapshot"`
	Finance         Finance         `json:"finance"`
	CreatedBy       int64           `json:"createdBy,omitempty"`
	Notes           string          `json:"notes,omitempty"`

	// Version backs the optimistic concurrency check on lifecycle writes.
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
