package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator for the request DTOs. Field
// errors are flattened into one client-readable message so handlers can
// return it verbatim in a 400 response.
type RequestValidator struct {
	v *validator.Validate
}

// New creates a validator for the request DTO tags
func New() *RequestValidator {
	return &RequestValidator{v: validator.New()}
}

// Validate checks the struct tags and reshapes any field errors
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, describe(fe))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, "; "))
}

// describe renders one field error without leaking Go struct paths
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
	}
}
