package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTestMenuItem(t *testing.T, name string, price float64, ingredients ...MenuItemIngredient) *MenuItem {
	t.Helper()
	item, err := NewMenuItem(NewMenuItemID(), name, "", MustPrice(price, GBP), ingredients, true)
	require.NoError(t, err)
	return item
}

func TestNewMenuItemIngredientRejectsZero(t *testing.T) {
	_, err := NewMenuItemIngredient(NewStockItemID(), ZeroQuantity(UnitLiters))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than zero")
}

func TestMenuItemIngredients(t *testing.T) {
	gin := NewStockItemID()
	tonic := NewStockItemID()
	item := mustTestMenuItem(t, "Gin & Tonic", 3.50)

	ginShot, err := NewMenuItemIngredient(gin, MustQuantity(0.05, UnitLiters))
	require.NoError(t, err)
	tonicSplash, err := NewMenuItemIngredient(tonic, MustQuantity(0.2, UnitLiters))
	require.NoError(t, err)

	item.AddIngredient(ginShot)
	item.AddIngredient(tonicSplash)
	require.Len(t, item.Ingredients(), 2)

	// same stock item replaces instead of duplicating
	doubleShot, err := NewMenuItemIngredient(gin, MustQuantity(0.1, UnitLiters))
	require.NoError(t, err)
	item.AddIngredient(doubleShot)
	require.Len(t, item.Ingredients(), 2)

	item.RemoveIngredient(tonic)
	ings := item.Ingredients()
	require.Len(t, ings, 1)
	assert.Equal(t, gin, ings[0].StockItemID)
	assert.Equal(t, "0.10 liters", ings[0].QuantityPerServing.String())

	item.ClearIngredients()
	assert.Empty(t, item.Ingredients())
}

func TestMenuItemAllergensDerivedFromStock(t *testing.T) {
	cod, err := NewStockItem(NewStockItemID(), "Cod Fillet", CategoryProteins,
		MustQuantity(15, UnitKilograms), nil, AllergenFish)
	require.NoError(t, err)
	flour, err := NewStockItem(NewStockItemID(), "Plain Flour", CategoryDryGoods,
		MustQuantity(25, UnitKilograms), nil, AllergenGluten)
	require.NoError(t, err)

	codPortion, err := NewMenuItemIngredient(cod.ID(), MustQuantity(0.18, UnitKilograms))
	require.NoError(t, err)
	batter, err := NewMenuItemIngredient(flour.ID(), MustQuantity(0.1, UnitKilograms))
	require.NoError(t, err)

	dish := mustTestMenuItem(t, "Fish & Chips", 8.50, codPortion, batter)
	assert.Empty(t, dish.Allergens())

	stockByID := map[StockItemID]*StockItem{cod.ID(): cod, flour.ID(): flour}
	dish.RefreshAllergens(stockByID)
	assert.Equal(t, []Allergen{AllergenFish, AllergenGluten}, dish.Allergens())
	assert.True(t, dish.ContainsAllergen(AllergenFish))
	assert.False(t, dish.ContainsAllergen(AllergenMilk))

	// unknown stock items are skipped rather than failing the refresh
	dish.RefreshAllergens(map[StockItemID]*StockItem{})
	assert.Empty(t, dish.Allergens())
}

func TestMenuItemLookup(t *testing.T) {
	gt := mustTestMenuItem(t, "Gin & Tonic", 3.50)
	lager := mustTestMenuItem(t, "Lager", 4.20)
	menu, err := NewMenu(NewMenuID(), "Bar Menu", "", MenuTypeBar, []*MenuItem{gt, lager}, true)
	require.NoError(t, err)

	assert.Equal(t, gt, menu.GetItem(gt.ID()))
	assert.Nil(t, menu.GetItem(NewMenuItemID()))
	assert.Equal(t, lager, menu.FindItemByName("LAGER"))
	assert.Nil(t, menu.FindItemByName("Stout"))

	names := func(items []*MenuItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Name()
		}
		return out
	}
	assert.Equal(t, []string{"Gin & Tonic", "Lager"}, names(menu.Items()))

	lager.SetAvailable(false)
	assert.Equal(t, []string{"Gin & Tonic"}, names(menu.AvailableItems()))

	menu.RemoveItem(gt.ID())
	assert.Len(t, menu.Items(), 1)

	stout := mustTestMenuItem(t, "Stout", 4.80)
	menu.AddItem(stout)
	assert.Equal(t, stout, menu.GetItem(stout.ID()))
}

func TestMenuValidationAndActivation(t *testing.T) {
	_, err := NewMenu(NewMenuID(), "  ", "", MenuTypeFood, nil, true)
	require.Error(t, err)

	menu, err := NewMenu(NewMenuID(), "Food Menu", "Kitchen classics", MenuTypeFood, nil, false)
	require.NoError(t, err)
	assert.False(t, menu.Active())

	menu.Activate()
	assert.True(t, menu.Active())
	menu.Deactivate()
	assert.False(t, menu.Active())

	require.NoError(t, menu.UpdateDetails("Evening Menu", "From 5pm"))
	assert.Equal(t, "Evening Menu", menu.Name())
	require.Error(t, menu.UpdateDetails("", ""))
}

func TestMenuAllergenQueries(t *testing.T) {
	lager, err := NewStockItem(NewStockItemID(), "Peroni", CategoryBeer,
		MustQuantity(20, UnitBottles), nil, AllergenGluten)
	require.NoError(t, err)
	prosecco, err := NewStockItem(NewStockItemID(), "House Prosecco", CategoryWine,
		MustQuantity(50, UnitBottles), nil, AllergenSulphites)
	require.NoError(t, err)
	tonic, err := NewStockItem(NewStockItemID(), "Fever Tree Tonic", CategoryMixers,
		MustQuantity(100, UnitLiters), nil)
	require.NoError(t, err)

	ing := func(s *StockItem, qty float64, unit Unit) MenuItemIngredient {
		i, err := NewMenuItemIngredient(s.ID(), MustQuantity(qty, unit))
		require.NoError(t, err)
		return i
	}
	beer := mustTestMenuItem(t, "Lager", 4.20, ing(lager, 1, UnitBottles))
	fizz := mustTestMenuItem(t, "Prosecco", 5.50, ing(prosecco, 0.17, UnitBottles))
	soft := mustTestMenuItem(t, "Tonic Water", 1.00, ing(tonic, 0.2, UnitLiters))

	menu, err := NewMenu(NewMenuID(), "Bar Menu", "", MenuTypeBar, []*MenuItem{beer, fizz, soft}, true)
	require.NoError(t, err)
	menu.RefreshAllAllergens(map[StockItemID]*StockItem{
		lager.ID(): lager, prosecco.ID(): prosecco, tonic.ID(): tonic,
	})

	assert.Equal(t, []Allergen{AllergenGluten, AllergenSulphites}, menu.CollectAllAllergens())

	withGluten := menu.FindItemsContainingAllergen(AllergenGluten)
	require.Len(t, withGluten, 1)
	assert.Equal(t, "Lager", withGluten[0].Name())

	safe := menu.FindItemsFreeOfAllergens([]Allergen{AllergenGluten, AllergenSulphites})
	require.Len(t, safe, 1)
	assert.Equal(t, "Tonic Water", safe[0].Name())
}
