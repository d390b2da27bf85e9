package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceRejectsNegative(t *testing.T) {
	_, err := NewPrice(decimal.NewFromFloat(-0.01), GBP)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")
}

func TestPriceAdd(t *testing.T) {
	a := MustPrice(3.50, GBP)
	b := MustPrice(1.00, GBP)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "£4.50", sum.String())
}

func TestPriceAddCurrencyMismatch(t *testing.T) {
	_, err := MustPrice(1, GBP).Add(MustPrice(1, EUR))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different currencies")
}

func TestPriceMulInt(t *testing.T) {
	total := MustPrice(8.50, GBP).MulInt(2)
	assert.Equal(t, "£17.00", total.String())
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "£3.50", MustPrice(3.5, GBP).String())
	assert.Equal(t, "€2.00", MustPrice(2, EUR).String())
	assert.Equal(t, "$9.99", MustPrice(9.99, USD).String())
	assert.Equal(t, "CHF 5.00", MustPrice(5, Currency("CHF")).String())
}
