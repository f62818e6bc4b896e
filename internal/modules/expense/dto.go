package expense

import "time"

type CreateExpenseRequest struct {
	Amount   int64      `json:"amount" binding:"required,gt=0"`
	Note     string     `json:"note" binding:"required"`
	Category string     `json:"category"`
	Date     *time.Time `json:"date"`
}
