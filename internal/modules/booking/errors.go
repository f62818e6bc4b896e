package booking

import "errors"

var (
	ErrNotFound           = errors.New("booking not found")
	ErrInvalidState       = errors.New("operation not allowed in current booking status")
	ErrInvalidBookingType = errors.New("operation not allowed for this booking type")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("concurrent modification")
)
