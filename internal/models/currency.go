package models

import (
	"fmt"
	"math"
	"strings"
)

// Currency is a display currency a visitor can select
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyBTC Currency = "BTC"
)

// DefaultCurrency is used when the session has no preference
const DefaultCurrency = CurrencyUSD

// Fixed conversion rates from US dollars.
var currencyRates = map[Currency]float64{
	CurrencyUSD: 1,
	CurrencyGBP: 0.6,
	CurrencyBTC: 0.0023707918444761,
}

// SupportedCurrencies lists the selectable currencies in display order
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyGBP, CurrencyBTC}
}

// ParseCurrency validates a currency code
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", ErrInvalidCurrency
	}
	return c, nil
}

// IsValid reports whether the currency has a conversion rate
func (c Currency) IsValid() bool {
	_, ok := currencyRates[c]
	return ok
}

// ConvertFromUSD converts a dollar amount. Unknown currencies yield NaN.
func ConvertFromUSD(value float64, currency Currency) float64 {
	rate, ok := currencyRates[currency]
	if !ok {
		return math.NaN()
	}
	return value * rate
}

// ConvertCents converts a price in US cents to the given currency
func ConvertCents(priceInCents int, currency Currency) float64 {
	return ConvertFromUSD(float64(priceInCents)/100, currency)
}

// Format renders an amount already converted to the currency
func (c Currency) Format(value float64) string {
	switch c {
	case CurrencyUSD:
		return fmt.Sprintf("$%.2f", value)
	case CurrencyGBP:
		return fmt.Sprintf("£%.2f", value)
	case CurrencyBTC:
		return fmt.Sprintf("%.8f BTC", value)
	default:
		return fmt.Sprintf("%.2f %s", value, string(c))
	}
}
