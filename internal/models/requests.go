package models

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the fixed address check used by checkout and signups.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")

// IsValidEmail reports whether the address passes the fixed pattern check
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CartAddRequest represents a request to add a product to the cart
type CartAddRequest struct {
	SKU    string `schema:"sku" json:"sku" validate:"required"`
	Guests int    `schema:"guests" json:"guests" validate:"gte=0"`
}

// CheckoutRequest represents the billing form submitted at checkout
type CheckoutRequest struct {
	Name  string `schema:"name" json:"name"`
	Email string `schema:"email" json:"email" validate:"travelemail"`
}

// NewsletterRequest represents a newsletter signup form
type NewsletterRequest struct {
	Name  string `schema:"name" json:"name"`
	Email string `schema:"email" json:"email" validate:"travelemail"`
}

// PurchaseRequest represents a vacation purchase form
type PurchaseRequest struct {
	PurchaseSKU string `schema:"purchaseSku" json:"purchaseSku" validate:"required"`
}

// SeasonRequest represents the admin season toggle form
type SeasonRequest struct {
	InSeason bool `schema:"in_season" json:"in_season"`
}

// NotifyRequest represents a request to be told when a vacation is in season
type NotifyRequest struct {
	Email string `schema:"email" json:"email" validate:"travelemail"`
	SKU   string `schema:"sku" json:"sku" validate:"required"`
}

// ContestEntryRequest represents the text fields of a photo contest entry
type ContestEntryRequest struct {
	Name  string `schema:"name" json:"name"`
	Email string `schema:"email" json:"email" validate:"travelemail"`
	Year  int    `validate:"gte=2000,lte=9999"`
	Month int    `validate:"gte=1,lte=12"`
}

// TourUpdateRequest represents an API tour update
type TourUpdateRequest struct {
	Name  string  `schema:"name" json:"name" validate:"required"`
	Price float64 `schema:"price" json:"price" validate:"gte=0"`
}

// APIResponse is the JSON shape returned by form and API endpoints
type APIResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("travelemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
	})
	return validate
}

// ValidateRequest checks a request struct against its validate tags.
// The first failing field is returned as a *FieldError; email failures map to ErrInvalidEmail.
func ValidateRequest(req interface{}) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	first := verrs[0]
	if first.Tag() == "travelemail" {
		return ErrInvalidEmail
	}
	return &FieldError{
		Field:   first.Field(),
		Message: fmt.Sprintf("failed %q check", first.Tag()),
	}
}
