package expense

import "errors"

var (
	ErrNotFound   = errors.New("expense not found")
	ErrValidation = errors.New("validation failed")
)
