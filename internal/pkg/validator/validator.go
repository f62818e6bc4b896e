package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Request structs carry gin's `binding` tags; read those so handler
	// DTOs need only one tag set.
	validate.SetTagName("binding")
}

// Validate checks struct tags and returns field->tag failures, nil if clean.
// Amount fields carry gte=0 tags so malformed input fails closed instead of
// being coerced to zero inside the financial core.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	failures := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		failures[fe.Field()] = fe.Tag()
	}
	return failures
}
