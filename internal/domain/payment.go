package domain

import "time"

type PaymentType string

const (
	PaymentRent       PaymentType = "RENT"
	PaymentDepositIn  PaymentType = "DEPOSIT_IN"
	PaymentDepositOut PaymentType = "DEPOSIT_OUT"
	PaymentRefund     PaymentType = "REFUND"
)

type PaymentMethod string

const (
	MethodCash  PaymentMethod = "CASH"
	MethodUPI   PaymentMethod = "UPI"
	MethodCard  PaymentMethod = "CARD"
	MethodOther PaymentMethod = "OTHER"
)

// Payment is one append-only journal entry. Amount is always positive;
// direction is carried by Type. FromDeposit marks a RENT entry that was
// settled by deducting from the held security deposit instead of a fresh
// payment channel.
type Payment struct {
	ID          int64         `json:"id"`
	Reference   string        `json:"reference"`
	BookingID   int64         `json:"bookingId"`
	Type        PaymentType   `json:"type"`
	Method      PaymentMethod `json:"method"`
	FromDeposit bool          `json:"fromDeposit,omitempty"`
	Amount      int64         `json:"amount"`
	PaidAt      time.Time     `json:"paidAt"`
	CreatedBy   int64         `json:"createdBy,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
