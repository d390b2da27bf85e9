package domain

import (
	"fmt"
	"sort"
	"strings"
)

type MenuType string

const (
	MenuTypeBar  MenuType = "BAR"
	MenuTypeFood MenuType = "FOOD"
)

// MenuItemIngredient links a menu item to the stock item it is made from
// and the quantity one serving consumes.
type MenuItemIngredient struct {
	StockItemID        StockItemID
	QuantityPerServing Quantity
}

func NewMenuItemIngredient(stockItemID StockItemID, quantityPerServing Quantity) (MenuItemIngredient, error) {
	if quantityPerServing.IsZero() {
		return MenuItemIngredient{}, fmt.Errorf("quantity per serving must be greater than zero")
	}
	return MenuItemIngredient{StockItemID: stockItemID, QuantityPerServing: quantityPerServing}, nil
}

// MenuItem is an entity inside the Menu aggregate. Its allergen set is a
// cache derived from ingredient stock items; call RefreshAllergens after
// stock allergens change or after loading from persistence.
type MenuItem struct {
	id          MenuItemID
	name        string
	description string
	price       Price
	ingredients []MenuItemIngredient
	available   bool
	allergens   map[Allergen]struct{}
}

func NewMenuItem(id MenuItemID, name, description string, price Price,
	ingredients []MenuItemIngredient, available bool) (*MenuItem, error) {

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("menu item name cannot be blank")
	}
	return &MenuItem{
		id:          id,
		name:        name,
		description: description,
		price:       price,
		ingredients: append([]MenuItemIngredient(nil), ingredients...),
		available:   available,
		allergens:   make(map[Allergen]struct{}),
	}, nil
}

func (m *MenuItem) ID() MenuItemID      { return m.id }
func (m *MenuItem) Name() string        { return m.name }
func (m *MenuItem) Description() string { return m.description }
func (m *MenuItem) Price() Price        { return m.price }
func (m *MenuItem) Available() bool     { return m.available }

func (m *MenuItem) Ingredients() []MenuItemIngredient {
	return append([]MenuItemIngredient(nil), m.ingredients...)
}

func (m *MenuItem) UpdateDetails(name, description string, price Price) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("menu item name cannot be blank")
	}
	m.name = name
	m.description = description
	m.price = price
	return nil
}

// AddIngredient replaces an existing ingredient for the same stock item,
// otherwise appends.
func (m *MenuItem) AddIngredient(ingredient MenuItemIngredient) {
	for i, existing := range m.ingredients {
		if existing.StockItemID == ingredient.StockItemID {
			m.ingredients[i] = ingredient
			return
		}
	}
	m.ingredients = append(m.ingredients, ingredient)
}

func (m *MenuItem) RemoveIngredient(stockItemID StockItemID) {
	kept := m.ingredients[:0]
	for _, ing := range m.ingredients {
		if ing.StockItemID != stockItemID {
			kept = append(kept, ing)
		}
	}
	m.ingredients = kept
}

func (m *MenuItem) ClearIngredients() {
	m.ingredients = nil
}

func (m *MenuItem) SetAvailable(available bool) {
	m.available = available
}

func (m *MenuItem) Allergens() []Allergen {
	out := make([]Allergen, 0, len(m.allergens))
	for a := range m.allergens {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *MenuItem) ContainsAllergen(allergen Allergen) bool {
	_, ok := m.allergens[allergen]
	return ok
}

// CollectAllergensFromIngredients derives the allergen set from the given
// stock items without touching the cache.
func (m *MenuItem) CollectAllergensFromIngredients(stockByID map[StockItemID]*StockItem) []Allergen {
	set := make(map[Allergen]struct{})
	for _, ing := range m.ingredients {
		item, ok := stockByID[ing.StockItemID]
		if !ok {
			continue
		}
		for _, a := range item.Allergens() {
			set[a] = struct{}{}
		}
	}
	out := make([]Allergen, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RefreshAllergens recomputes and caches the allergen set.
func (m *MenuItem) RefreshAllergens(stockByID map[StockItemID]*StockItem) {
	set := make(map[Allergen]struct{})
	for _, a := range m.CollectAllergensFromIngredients(stockByID) {
		set[a] = struct{}{}
	}
	m.allergens = set
}

// Menu is the aggregate grouping menu items of one type (bar or food).
type Menu struct {
	eventRecorder
	id          MenuID
	name        string
	description string
	menuType    MenuType
	items       map[MenuItemID]*MenuItem
	active      bool
}

func NewMenu(id MenuID, name, description string, menuType MenuType, items []*MenuItem, active bool) (*Menu, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("menu name cannot be blank")
	}
	byID := make(map[MenuItemID]*MenuItem, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}
	return &Menu{
		id:          id,
		name:        name,
		description: description,
		menuType:    menuType,
		items:       byID,
		active:      active,
	}, nil
}

func (m *Menu) ID() MenuID          { return m.id }
func (m *Menu) Name() string        { return m.name }
func (m *Menu) Description() string { return m.description }
func (m *Menu) Type() MenuType      { return m.menuType }
func (m *Menu) Active() bool        { return m.active }

func (m *Menu) Items() []*MenuItem {
	out := make([]*MenuItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (m *Menu) UpdateDetails(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("menu name cannot be blank")
	}
	m.name = name
	m.description = description
	return nil
}

func (m *Menu) AddItem(item *MenuItem) {
	m.items[item.ID()] = item
}

func (m *Menu) RemoveItem(itemID MenuItemID) {
	delete(m.items, itemID)
}

func (m *Menu) GetItem(itemID MenuItemID) *MenuItem {
	return m.items[itemID]
}

func (m *Menu) FindItemByName(name string) *MenuItem {
	for _, item := range m.items {
		if strings.EqualFold(item.Name(), name) {
			return item
		}
	}
	return nil
}

func (m *Menu) Activate()   { m.active = true }
func (m *Menu) Deactivate() { m.active = false }

func (m *Menu) AvailableItems() []*MenuItem {
	out := make([]*MenuItem, 0, len(m.items))
	for _, item := range m.items {
		if item.Available() {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// CollectAllAllergens returns the union of cached allergens across all
// menu items.
func (m *Menu) CollectAllAllergens() []Allergen {
	set := make(map[Allergen]struct{})
	for _, item := range m.items {
		for _, a := range item.Allergens() {
			set[a] = struct{}{}
		}
	}
	out := make([]Allergen, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m *Menu) FindItemsContainingAllergen(allergen Allergen) []*MenuItem {
	out := make([]*MenuItem, 0)
	for _, item := range m.Items() {
		if item.ContainsAllergen(allergen) {
			out = append(out, item)
		}
	}
	return out
}

func (m *Menu) FindItemsFreeOfAllergens(allergens []Allergen) []*MenuItem {
	avoid := make(map[Allergen]struct{}, len(allergens))
	for _, a := range allergens {
		avoid[a] = struct{}{}
	}
	out := make([]*MenuItem, 0)
	for _, item := range m.Items() {
		clean := true
		for _, a := range item.Allergens() {
			if _, ok := avoid[a]; ok {
				clean = false
				break
			}
		}
		if clean {
			out = append(out, item)
		}
	}
	return out
}

// RefreshAllAllergens refreshes the cached allergens of every item from
// the given stock items.
func (m *Menu) RefreshAllAllergens(stockByID map[StockItemID]*StockItem) {
	for _, item := range m.items {
		item.RefreshAllergens(stockByID)
	}
}
