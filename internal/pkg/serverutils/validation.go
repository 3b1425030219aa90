package serverutils

import (
	"errors"

	"medstory-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks validate tags and reports the first failing field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &apperror.ValidationError{Field: fieldErrs[0].Field(), Reason: fieldErrs[0].Tag()}
	}
	return &apperror.ValidationError{Reason: err.Error()}
}
