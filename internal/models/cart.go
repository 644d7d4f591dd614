package models

// Cart represents the pending order held in a visitor's session
type Cart struct {
	Number   string     `json:"number,omitempty"`
	Items    []CartItem `json:"items"`
	Billing  *Billing   `json:"billing,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// CartItem represents one booked product and its guest count
type CartItem struct {
	SKU            string `json:"sku"`
	ProductName    string `json:"product_name"`
	PriceInCents   int    `json:"price_in_cents"`
	MaximumGuests  int    `json:"maximum_guests"`
	RequiresWaiver bool   `json:"requires_waiver"`
	Guests         int    `json:"guests"`
}

// Billing holds the contact the order confirmation is sent to
type Billing struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCartItem snapshots the fields of a product the cart needs
func NewCartItem(p *Product, guests int) CartItem {
	return CartItem{
		SKU:            p.SKU,
		ProductName:    p.Name,
		PriceInCents:   p.PriceInCents,
		MaximumGuests:  p.MaximumGuests,
		RequiresWaiver: p.RequiresWaiver,
		Guests:         guests,
	}
}

// IsEmpty reports whether the cart holds no items
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// IsCheckedOut reports whether an order number has been assigned
func (c *Cart) IsCheckedOut() bool {
	return c != nil && c.Number != ""
}

// TotalInCents sums the list price of every item
func (c *Cart) TotalInCents() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.PriceInCents
	}
	return total
}
