package pages

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
)

// CartLine is one cart item priced in the visitor's currency
type CartLine struct {
	Name   string
	Guests int
	Price  string
}

// CartView is what the cart and checkout pages render
type CartView struct {
	Cart  *models.Cart
	Lines []CartLine
	Total string
}

// VacationsView lists the bookable vacations in the selected currency
type VacationsView struct {
	Vacations  []*services.VacationView
	Currency   models.Currency
	Currencies []models.Currency
}

func currencyURL(c models.Currency) templ.SafeURL {
	return templ.URL("/set-currency/" + string(c))
}

func vacationURL(slug string) templ.SafeURL {
	return templ.URL("/vacation/" + slug)
}

func notifyURL(sku string) templ.SafeURL {
	return templ.URL("/notify-me-when-in-season?sku=" + url.QueryEscape(sku))
}

func contestAction(year, month int) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/contest/vacation-photo/%d/%d", year, month))
}

func seasonAction(sku string) templ.SafeURL {
	return templ.URL("/vacations/" + url.PathEscape(sku) + "/season")
}

// thumbnail falls back to the full photo for entries stored before thumbnails existed
func thumbnail(e *models.ContestEntry) string {
	if e.ThumbnailURL != "" {
		return e.ThumbnailURL
	}
	return e.PhotoURL
}

func listPrice(p *models.Product) string {
	return fmt.Sprintf("$%.2f", p.PriceInDollars())
}

func seasonLabel(p *models.Product) string {
	if p.InSeason {
		return "Mark out of season"
	}
	return "Mark in season"
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
