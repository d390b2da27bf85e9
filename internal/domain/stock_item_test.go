package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, qty float64, threshold *float64) *StockItem {
	t.Helper()
	var th *LowStockThreshold
	if threshold != nil {
		v := NewLowStockThreshold(MustQuantity(*threshold, UnitBottles))
		th = &v
	}
	item, err := NewStockItem(NewStockItemID(), "Absolut Vodka", CategorySpirits,
		MustQuantity(qty, UnitBottles), th)
	require.NoError(t, err)
	return item
}

func floatPtr(v float64) *float64 { return &v }

func TestNewStockItemValidation(t *testing.T) {
	_, err := NewStockItem(NewStockItemID(), "  ", CategorySpirits, MustQuantity(1, UnitBottles), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be blank")

	th := NewLowStockThreshold(MustQuantity(5, UnitLiters))
	_, err = NewStockItem(NewStockItemID(), "Gin", CategorySpirits, MustQuantity(10, UnitBottles), &th)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold unit must match stock unit")
}

func TestAddStock(t *testing.T) {
	item := newTestItem(t, 10, nil)

	require.NoError(t, item.AddStock(MustQuantity(5, UnitBottles)))
	assert.Equal(t, "15.00 bottles", item.Quantity().String())

	events := item.Events()
	require.Len(t, events, 1)
	added, ok := events[0].(StockAdded)
	require.True(t, ok)
	assert.Equal(t, "stock.added", added.EventName())
	assert.Equal(t, "15.00 bottles", added.NewTotal.String())
}

func TestAddThenRemoveRestoresExactQuantity(t *testing.T) {
	item := newTestItem(t, 7.25, nil)
	original := item.Quantity()
	delta := MustQuantity(2.4, UnitBottles)

	require.NoError(t, item.AddStock(delta))
	require.NoError(t, item.RemoveStock(delta))

	cmp, err := item.Quantity().Cmp(original)
	require.NoError(t, err)
	assert.Zero(t, cmp)
	assert.Equal(t, "7.25 bottles", item.Quantity().String())
}

func TestRemoveStockInsufficient(t *testing.T) {
	item := newTestItem(t, 5, nil)

	err := item.RemoveStock(MustQuantity(10, UnitBottles))
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t,
		`insufficient stock for "Absolut Vodka": requested 10.00 bottles but only 5.00 bottles available`,
		err.Error())

	// failed removal mutates nothing and records nothing
	assert.Equal(t, "5.00 bottles", item.Quantity().String())
	assert.Empty(t, item.Events())
}

func TestRemoveStockTriggersLowStockAlert(t *testing.T) {
	item := newTestItem(t, 10, floatPtr(5))

	require.NoError(t, item.RemoveStock(MustQuantity(6, UnitBottles)))
	assert.Equal(t, "4.00 bottles", item.Quantity().String())
	assert.True(t, item.IsLowStock())

	events := item.Events()
	require.Len(t, events, 2)
	_, ok := events[0].(StockRemoved)
	require.True(t, ok)
	alert, ok := events[1].(LowStockAlertRaised)
	require.True(t, ok)
	assert.Equal(t, "stock.low_stock_alert", alert.EventName())
	assert.Equal(t, "Absolut Vodka", alert.ItemName)
	assert.Equal(t, "4.00 bottles", alert.CurrentQuantity.String())
	assert.Equal(t, "5.00 bottles", alert.Threshold.String())
}

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	item := newTestItem(t, 10, floatPtr(5))

	// lands exactly on the threshold
	require.NoError(t, item.RemoveStock(MustQuantity(5, UnitBottles)))
	assert.True(t, item.IsLowStock())
	require.Len(t, item.Events(), 2)
}

func TestLowStockAlertRepeatsPerBreachingMutation(t *testing.T) {
	item := newTestItem(t, 6, floatPtr(5))

	require.NoError(t, item.RemoveStock(MustQuantity(2, UnitBottles)))
	require.NoError(t, item.RemoveStock(MustQuantity(1, UnitBottles)))

	var alerts int
	for _, e := range item.Events() {
		if _, ok := e.(LowStockAlertRaised); ok {
			alerts++
		}
	}
	assert.Equal(t, 2, alerts)
}

func TestAddStockAboveThresholdClearsLowStock(t *testing.T) {
	item := newTestItem(t, 4, floatPtr(5))
	require.True(t, item.IsLowStock())

	require.NoError(t, item.AddStock(MustQuantity(10, UnitBottles)))
	assert.False(t, item.IsLowStock())
}

func TestAdjustStock(t *testing.T) {
	item := newTestItem(t, 10, floatPtr(5))

	require.NoError(t, item.AdjustStock(MustQuantity(3, UnitBottles), "stocktake correction"))
	assert.Equal(t, "3.00 bottles", item.Quantity().String())

	events := item.Events()
	require.Len(t, events, 2)
	adjusted, ok := events[0].(StockAdjusted)
	require.True(t, ok)
	assert.Equal(t, "10.00 bottles", adjusted.PreviousQuantity.String())
	assert.Equal(t, "stocktake correction", adjusted.Reason)
	_, ok = events[1].(LowStockAlertRaised)
	assert.True(t, ok)
}

func TestSetLowStockThreshold(t *testing.T) {
	item := newTestItem(t, 4, nil)

	require.NoError(t, item.SetLowStockThreshold(NewLowStockThreshold(MustQuantity(5, UnitBottles))))
	assert.True(t, item.IsLowStock())

	events := item.Events()
	require.Len(t, events, 2)
	updated, ok := events[0].(ThresholdUpdated)
	require.True(t, ok)
	assert.Nil(t, updated.PreviousThreshold)
	assert.Equal(t, "5.00 bottles", updated.NewThreshold.String())

	err := item.SetLowStockThreshold(NewLowStockThreshold(MustQuantity(5, UnitLiters)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold unit must match stock unit")
}

func TestStockUnitMismatchRejected(t *testing.T) {
	item := newTestItem(t, 10, nil)

	require.Error(t, item.AddStock(MustQuantity(1, UnitLiters)))
	require.Error(t, item.RemoveStock(MustQuantity(1, UnitLiters)))
	require.Error(t, item.AdjustStock(MustQuantity(1, UnitLiters), "x"))
	assert.Empty(t, item.Events())
}

func TestAllergenUpdatesAreIdempotent(t *testing.T) {
	item, err := NewStockItem(NewStockItemID(), "Peroni", CategoryBeer,
		MustQuantity(20, UnitBottles), nil, AllergenGluten)
	require.NoError(t, err)

	item.AddAllergen(AllergenGluten)
	assert.Empty(t, item.Events())

	item.AddAllergen(AllergenSulphites)
	require.Len(t, item.Events(), 1)
	assert.ElementsMatch(t, []Allergen{AllergenGluten, AllergenSulphites}, item.Allergens())

	item.ClearEvents()
	item.UpdateAllergens([]Allergen{AllergenSulphites, AllergenGluten})
	assert.Empty(t, item.Events())

	item.UpdateAllergens([]Allergen{AllergenFish})
	require.Len(t, item.Events(), 1)
	assert.True(t, item.ContainsAllergen(AllergenFish))
	assert.False(t, item.ContainsAllergen(AllergenGluten))

	item.ClearEvents()
	item.RemoveAllergen(AllergenGluten)
	assert.Empty(t, item.Events())
}

func TestCategoryLocations(t *testing.T) {
	assert.Equal(t, LocationBar, CategorySpirits.Location())
	assert.Equal(t, LocationBar, CategoryMixers.Location())
	assert.Equal(t, LocationKitchen, CategoryProteins.Location())
	assert.Equal(t, LocationKitchen, CategoryFrozen.Location())

	item := newTestItem(t, 1, nil)
	assert.Equal(t, LocationBar, item.Location())
}

func TestClearEvents(t *testing.T) {
	item := newTestItem(t, 10, nil)
	require.NoError(t, item.AddStock(MustQuantity(1, UnitBottles)))
	require.Len(t, item.Events(), 1)

	item.ClearEvents()
	assert.Empty(t, item.Events())
}
