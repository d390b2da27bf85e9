package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(MustQuantity(4.5, UnitLiters))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"4.5","unit":"liters"}`, string(data))

	var q Quantity
	require.NoError(t, json.Unmarshal(data, &q))
	assert.Equal(t, "4.50 liters", q.String())

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"-1","unit":"liters"}`), &q))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"not a number","unit":"liters"}`), &q))
}

func TestPriceJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(MustPrice(3.5, GBP))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"3.5","currency":"GBP"}`, string(data))

	var p Price
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, "£3.50", p.String())
}

// The alert listener decodes this event off the wire, so the published
// shape matters.
func TestLowStockAlertJSON(t *testing.T) {
	alert := LowStockAlertRaised{
		StockItemID:     "item-1",
		ItemName:        "Absolut Vodka",
		CurrentQuantity: MustQuantity(4, UnitBottles),
		Threshold:       MustQuantity(5, UnitBottles),
		At:              time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(alert)
	require.NoError(t, err)

	var decoded LowStockAlertRaised
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, alert.ItemName, decoded.ItemName)
	assert.Equal(t, "4.00 bottles", decoded.CurrentQuantity.String())
	assert.Equal(t, "5.00 bottles", decoded.Threshold.String())
	assert.True(t, alert.At.Equal(decoded.At))
}
