package models

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of these so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream error")
)

// Common errors used throughout the application
var (
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("cart %w", ErrNotFound)
	ErrTourNotFound     = fmt.Errorf("tour %w", ErrNotFound)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email address", ErrValidation)
	ErrInvalidGuests    = fmt.Errorf("%w: guest count must not be negative", ErrValidation)
	ErrInvalidCurrency  = fmt.Errorf("%w: unsupported currency", ErrValidation)
	ErrInvalidPhoto     = fmt.Errorf("%w: uploaded file is not an image", ErrValidation)
	ErrCartFull         = fmt.Errorf("%w: cart is full", ErrValidation)
	ErrDatabase         = fmt.Errorf("%w: database error", ErrUpstream)
	ErrEmailUnavailable = fmt.Errorf("%w: email service unavailable", ErrUpstream)
)

// FieldError reports a single invalid request field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes every FieldError match ErrValidation.
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
