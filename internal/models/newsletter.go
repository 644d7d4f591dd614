package models

import "time"

// NewsletterSignup represents a newsletter subscription
type NewsletterSignup struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// InSeasonListener is a visitor waiting for products to come into season
type InSeasonListener struct {
	Email string   `json:"email" db:"email"`
	SKUs  []string `json:"skus" db:"skus"`
}

// HasSKU reports whether the listener already waits on the SKU
func (l *InSeasonListener) HasSKU(sku string) bool {
	for _, s := range l.SKUs {
		if s == sku {
			return true
		}
	}
	return false
}
