package components

import (
	"strconv"
	"time"

	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/services"
)

// Page carries the per-request values the site layout renders around every page
type Page struct {
	Title     string
	CSRFToken string
	ShowTests bool
	Flash     *models.Flash
	Weather   []services.WeatherLocation
	Cart      *models.Cart
}

// documentTitle prefixes the site name with the page title when there is one
func documentTitle(title, site string) string {
	if title == "" {
		return site
	}
	return title + " | " + site
}

// cartLabel shows the item count once the visitor has a cart
func cartLabel(cart *models.Cart) string {
	if cart == nil {
		return "Cart"
	}
	return "Cart (" + strconv.Itoa(len(cart.Items)) + ")"
}

func currentYear() string {
	return strconv.Itoa(time.Now().Year())
}
