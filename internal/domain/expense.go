package domain

import "time"

// Expense is an operational outgoing, kept separate from the payment
// journal: returning a customer's deposit is not an expense, buying a
// backdrop is.
type Expense struct {
	ID        int64     `json:"id"`
	Amount    int64     `json:"amount"`
	Note      string    `json:"note"`
	Category  string    `json:"category"`
	Date      time.Time `json:"date"`
	CreatedBy int64     `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
