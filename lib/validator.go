package lib

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	Validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.Validator.Struct(i)
}

// FieldErrors flattens validator errors into a field -> message map that the
// UI can render inline next to the offending inputs.
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fields
	}
	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:]
		switch fieldError.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", fieldError.Field())
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid email address", fieldError.Field())
		case "gt", "gte", "min":
			fields[field] = fmt.Sprintf("%s must be positive", fieldError.Field())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", fieldError.Field())
		}
	}
	return fields
}
