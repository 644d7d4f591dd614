package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFromUSD(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		currency Currency
		expected float64
	}{
		{"dollars stay dollars", 100, CurrencyUSD, 100},
		{"pounds", 100, CurrencyGBP, 60},
		{"bitcoin", 100, CurrencyBTC, 100 * 0.0023707918444761},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ConvertFromUSD(tt.value, tt.currency), 1e-12)
		})
	}
}

func TestConvertFromUSD_UnknownCurrencyIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(ConvertFromUSD(100, Currency("EUR"))))
	assert.True(t, math.IsNaN(ConvertCents(10000, Currency(""))))
}

func TestConvertCents(t *testing.T) {
	assert.InDelta(t, 100*0.0023707918444761, ConvertCents(100_00, CurrencyBTC), 1e-12)
	assert.InDelta(t, 99.95, ConvertCents(9995, CurrencyUSD), 1e-9)
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" gbp ")
	require.NoError(t, err)
	assert.Equal(t, CurrencyGBP, c)

	_, err = ParseCurrency("DOGE")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
	assert.True(t, IsValidation(err))
}

func TestCurrency_Format(t *testing.T) {
	assert.Equal(t, "$99.99", CurrencyUSD.Format(99.99))
	assert.Equal(t, "£59.99", CurrencyGBP.Format(ConvertCents(9999, CurrencyGBP)))
	assert.Equal(t, "0.23705548 BTC", CurrencyBTC.Format(ConvertCents(9999, CurrencyBTC)))
}
