package models

import "strings"

// Product represents a bookable tour or vacation package in the catalog
type Product struct {
	SKU            string   `json:"sku" db:"sku"`
	Name           string   `json:"name" db:"name"`
	Slug           string   `json:"slug" db:"slug"`
	Category       string   `json:"category" db:"category"`
	Description    string   `json:"description" db:"description"`
	PriceInCents   int      `json:"price_in_cents" db:"price_in_cents"`
	Tags           []string `json:"tags" db:"tags"`
	MaximumGuests  int      `json:"maximum_guests" db:"maximum_guests"`
	RequiresWaiver bool     `json:"requires_waiver" db:"requires_waiver"`
	Available      bool     `json:"available" db:"available"`
	InSeason       bool     `json:"in_season" db:"in_season"`
	PackagesSold   int64    `json:"packages_sold" db:"packages_sold"`
	Notes          string   `json:"notes,omitempty" db:"notes"`
}

// ProductFilter selects products. Unset fields are ignored and set fields are ANDed.
type ProductFilter struct {
	Category  string
	Slug      string
	SKU       string
	Available *bool
}

// Matches reports whether the product satisfies every set field of the filter
func (f ProductFilter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Slug != "" && p.Slug != f.Slug {
		return false
	}
	if f.SKU != "" && p.SKU != strings.TrimSpace(f.SKU) {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	return true
}

// Clone returns a deep copy so callers cannot mutate catalog state
func (p *Product) Clone() *Product {
	c := *p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return &c
}

// PriceInDollars returns the list price in US dollars
func (p *Product) PriceInDollars() float64 {
	return float64(p.PriceInCents) / 100
}

// DefaultCatalog returns the products the site ships with
func DefaultCatalog() []*Product {
	return []*Product{
		{
			SKU:           "723",
			Name:          "Hood River Tour",
			Slug:          "hood-river",
			Category:      "tour",
			Description:   "A guided day on the Columbia River Gorge.",
			PriceInCents:  9999,
			MaximumGuests: 15,
			Available:     true,
			InSeason:      true,
		},
		{
			SKU:           "446",
			Name:          "Oregon Coast Tour",
			Slug:          "oregon-coast",
			Category:      "tour",
			Description:   "Lighthouses, tide pools and chowder.",
			PriceInCents:  14995,
			MaximumGuests: 10,
			Available:     true,
			InSeason:      true,
		},
		{
			SKU:            "944",
			Name:           "Rock Climbing in Bend",
			Slug:           "rock-climbing/bend",
			Category:       "adventure",
			Description:    "Guided climbing at Smith Rock.",
			PriceInCents:   28999,
			MaximumGuests:  4,
			RequiresWaiver: true,
			Available:      true,
			InSeason:       true,
		},
		{
			SKU:           "HR199",
			Name:          "Hood River Day Trip",
			Slug:          "hood-river-day-trip",
			Category:      "Day Trip",
			Description:   "Spend a day sailing on the Columbia and enjoying craft beers in Hood River!",
			PriceInCents:  9995,
			Tags:          []string{"day trip", "hood river", "sailing", "windsurfing", "breweries"},
			MaximumGuests: 16,
			Available:     true,
			InSeason:      true,
		},
		{
			SKU:           "OC39",
			Name:          "Oregon Coast Getaway",
			Slug:          "oregon-coast-getaway",
			Category:      "Weekend Getaway",
			Description:   "Enjoy the ocean air and quaint coastal towns!",
			PriceInCents:  269995,
			Tags:          []string{"weekend getaway", "oregon coast", "beachcombing"},
			MaximumGuests: 8,
			Available:     true,
			InSeason:      false,
		},
		{
			SKU:            "B99",
			Name:           "Rock Climbing in Bend",
			Slug:           "rock-climbing-in-bend",
			Category:       "Adventure",
			Description:    "Experience the thrill of rock climbing in the high desert.",
			PriceInCents:   289995,
			Tags:           []string{"weekend getaway", "bend", "high desert", "rock climbing", "hiking", "skiing"},
			MaximumGuests:  4,
			RequiresWaiver: true,
			Available:      false,
			InSeason:       true,
			Notes:          "The tour guide is currently recovering from a skiing accident.",
		},
	}
}
