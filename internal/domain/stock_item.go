package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// LowStockThreshold marks the quantity at or below which an item is
// considered low stock. The boundary is inclusive.
type LowStockThreshold struct {
	quantity Quantity
}

func NewLowStockThreshold(quantity Quantity) LowStockThreshold {
	return LowStockThreshold{quantity: quantity}
}

func (t LowStockThreshold) Quantity() Quantity { return t.quantity }

func (t LowStockThreshold) Breached(current Quantity) bool {
	// Units are guaranteed equal by the owning StockItem.
	le, _ := current.LessThanOrEqual(t.quantity)
	return le
}

func (t LowStockThreshold) String() string {
	return "low stock threshold: " + t.quantity.String()
}

// StockItem tracks one inventory line. It enforces non-negative stock
// and records an event for every mutation; low-stock alerts re-fire on
// every breaching mutation rather than edge-triggering on first breach.
type StockItem struct {
	eventRecorder
	id        StockItemID
	name      string
	category  StockCategory
	quantity  Quantity
	threshold *LowStockThreshold
	allergens map[Allergen]struct{}
}

func NewStockItem(id StockItemID, name string, category StockCategory, initial Quantity,
	threshold *LowStockThreshold, allergens ...Allergen) (*StockItem, error) {

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("stock item name cannot be blank")
	}
	if threshold != nil && threshold.quantity.Unit() != initial.Unit() {
		return nil, fmt.Errorf("threshold unit must match stock unit: %s vs %s",
			threshold.quantity.Unit(), initial.Unit())
	}
	set := make(map[Allergen]struct{}, len(allergens))
	for _, a := range allergens {
		set[a] = struct{}{}
	}
	return &StockItem{
		id:        id,
		name:      name,
		category:  category,
		quantity:  initial,
		threshold: threshold,
		allergens: set,
	}, nil
}

func (s *StockItem) ID() StockItemID         { return s.id }
func (s *StockItem) Name() string            { return s.name }
func (s *StockItem) Category() StockCategory { return s.category }
func (s *StockItem) Location() Location      { return s.category.Location() }
func (s *StockItem) Quantity() Quantity      { return s.quantity }

func (s *StockItem) LowStockThreshold() *LowStockThreshold {
	if s.threshold == nil {
		return nil
	}
	t := *s.threshold
	return &t
}

func (s *StockItem) Allergens() []Allergen {
	out := make([]Allergen, 0, len(s.allergens))
	for a := range s.allergens {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *StockItem) ContainsAllergen(allergen Allergen) bool {
	_, ok := s.allergens[allergen]
	return ok
}

func (s *StockItem) AddStock(amount Quantity) error {
	if amount.Unit() != s.quantity.Unit() {
		return &InvalidQuantityError{
			Reason: fmt.Sprintf("cannot add stock with different unit: %s vs %s", amount.Unit(), s.quantity.Unit()),
		}
	}
	newTotal, err := s.quantity.Add(amount)
	if err != nil {
		return err
	}
	s.quantity = newTotal
	s.record(StockAdded{
		StockItemID:   s.id,
		QuantityAdded: amount,
		NewTotal:      newTotal,
		At:            time.Now().UTC(),
	})
	return nil
}

func (s *StockItem) RemoveStock(amount Quantity) error {
	if amount.Unit() != s.quantity.Unit() {
		return &InvalidQuantityError{
			Reason: fmt.Sprintf("cannot remove stock with different unit: %s vs %s", amount.Unit(), s.quantity.Unit()),
		}
	}
	exceeds, err := amount.GreaterThan(s.quantity)
	if err != nil {
		return err
	}
	if exceeds {
		return &InsufficientStockError{ItemName: s.name, Requested: amount, Available: s.quantity}
	}
	newTotal, err := s.quantity.Sub(amount)
	if err != nil {
		return err
	}
	s.quantity = newTotal
	s.record(StockRemoved{
		StockItemID:     s.id,
		QuantityRemoved: amount,
		NewTotal:        newTotal,
		At:              time.Now().UTC(),
	})
	s.checkLowStockThreshold()
	return nil
}

// AdjustStock unconditionally sets the quantity, up or down, including
// below what RemoveStock would permit. Used for stocktake corrections.
func (s *StockItem) AdjustStock(newQuantity Quantity, reason string) error {
	if newQuantity.Unit() != s.quantity.Unit() {
		return &InvalidQuantityError{
			Reason: fmt.Sprintf("cannot adjust stock with different unit: %s vs %s", newQuantity.Unit(), s.quantity.Unit()),
		}
	}
	previous := s.quantity
	s.quantity = newQuantity
	s.record(StockAdjusted{
		StockItemID:      s.id,
		PreviousQuantity: previous,
		NewQuantity:      newQuantity,
		Reason:           reason,
		At:               time.Now().UTC(),
	})
	s.checkLowStockThreshold()
	return nil
}

func (s *StockItem) SetLowStockThreshold(threshold LowStockThreshold) error {
	if threshold.quantity.Unit() != s.quantity.Unit() {
		return &InvalidQuantityError{
			Reason: fmt.Sprintf("threshold unit must match stock unit: %s vs %s", threshold.quantity.Unit(), s.quantity.Unit()),
		}
	}
	var previous *Quantity
	if s.threshold != nil {
		q := s.threshold.quantity
		previous = &q
	}
	s.threshold = &threshold
	s.record(ThresholdUpdated{
		StockItemID:       s.id,
		PreviousThreshold: previous,
		NewThreshold:      threshold.quantity,
		At:                time.Now().UTC(),
	})
	s.checkLowStockThreshold()
	return nil
}

func (s *StockItem) IsLowStock() bool {
	return s.threshold != nil && s.threshold.Breached(s.quantity)
}

func (s *StockItem) checkLowStockThreshold() {
	if s.threshold == nil || !s.threshold.Breached(s.quantity) {
		return
	}
	s.record(LowStockAlertRaised{
		StockItemID:     s.id,
		ItemName:        s.name,
		CurrentQuantity: s.quantity,
		Threshold:       s.threshold.quantity,
		At:              time.Now().UTC(),
	})
}

func (s *StockItem) AddAllergen(allergen Allergen) {
	if _, ok := s.allergens[allergen]; ok {
		return
	}
	s.allergens[allergen] = struct{}{}
	s.recordAllergensUpdated()
}

func (s *StockItem) RemoveAllergen(allergen Allergen) {
	if _, ok := s.allergens[allergen]; !ok {
		return
	}
	delete(s.allergens, allergen)
	s.recordAllergensUpdated()
}

// UpdateAllergens replaces the whole set; no event is recorded when the
// new set equals the current one.
func (s *StockItem) UpdateAllergens(newAllergens []Allergen) {
	next := make(map[Allergen]struct{}, len(newAllergens))
	for _, a := range newAllergens {
		next[a] = struct{}{}
	}
	if allergenSetsEqual(s.allergens, next) {
		return
	}
	s.allergens = next
	s.recordAllergensUpdated()
}

func (s *StockItem) recordAllergensUpdated() {
	s.record(AllergensUpdated{
		StockItemID: s.id,
		ItemName:    s.name,
		Allergens:   s.Allergens(),
		At:          time.Now().UTC(),
	})
}

func allergenSetsEqual(a, b map[Allergen]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
