package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_TotalInCents(t *testing.T) {
	var nilCart *Cart
	assert.Equal(t, 0, nilCart.TotalInCents())
	assert.True(t, nilCart.IsEmpty())

	cart := &Cart{Items: []CartItem{
		{SKU: "723", PriceInCents: 9999, Guests: 2},
		{SKU: "446", PriceInCents: 14995, Guests: 1},
	}}
	assert.Equal(t, 24994, cart.TotalInCents())
	assert.False(t, cart.IsEmpty())
	assert.False(t, cart.IsCheckedOut())
}

func TestNewCartItem(t *testing.T) {
	p := &Product{SKU: "944", Name: "Rock Climbing in Bend", PriceInCents: 28999, MaximumGuests: 4, RequiresWaiver: true}
	item := NewCartItem(p, 3)

	assert.Equal(t, "944", item.SKU)
	assert.Equal(t, 3, item.Guests)
	assert.Equal(t, 4, item.MaximumGuests)
	assert.True(t, item.RequiresWaiver)
}

func TestInSeasonListener_HasSKU(t *testing.T) {
	l := &InSeasonListener{Email: "a@b.com", SKUs: []string{"OC39"}}
	assert.True(t, l.HasSKU("OC39"))
	assert.False(t, l.HasSKU("HR199"))
}
