package domain

// Location is a physical stock-keeping area that scopes both stock items
// and staff access.
type Location string

const (
	LocationBar     Location = "BAR"
	LocationKitchen Location = "KITCHEN"
)

func AllLocations() []Location {
	return []Location{LocationBar, LocationKitchen}
}

// StockCategory classifies a stock item and implies the location it is
// kept at.
type StockCategory string

const (
	CategorySpirits    StockCategory = "Spirits"
	CategoryWine       StockCategory = "Wine"
	CategoryBeer       StockCategory = "Beer"
	CategoryMixers     StockCategory = "Mixers"
	CategoryGarnishes  StockCategory = "Garnishes"
	CategoryProteins   StockCategory = "Proteins"
	CategoryVegetables StockCategory = "Vegetables"
	CategoryDairy      StockCategory = "Dairy"
	CategoryDryGoods   StockCategory = "Dry Goods"
	CategorySpices     StockCategory = "Spices"
	CategoryFrozen     StockCategory = "Frozen"
)

var categoryLocations = map[StockCategory]Location{
	CategorySpirits:    LocationBar,
	CategoryWine:       LocationBar,
	CategoryBeer:       LocationBar,
	CategoryMixers:     LocationBar,
	CategoryGarnishes:  LocationBar,
	CategoryProteins:   LocationKitchen,
	CategoryVegetables: LocationKitchen,
	CategoryDairy:      LocationKitchen,
	CategoryDryGoods:   LocationKitchen,
	CategorySpices:     LocationKitchen,
	CategoryFrozen:     LocationKitchen,
}

func (c StockCategory) Location() Location {
	return categoryLocations[c]
}
