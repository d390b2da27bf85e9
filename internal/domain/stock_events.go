package domain

import "time"

// Event names double as routing keys on the events exchange.
const (
	EventStockAdded        = "stock.added"
	EventStockRemoved      = "stock.removed"
	EventStockAdjusted     = "stock.adjusted"
	EventLowStockAlert     = "stock.low_stock_alert"
	EventThresholdUpdated  = "stock.threshold_updated"
	EventAllergensUpdated  = "stock.allergens_updated"
	EventOrderCreated      = "order.created"
	EventOrderStatusChange = "order.status_changed"
	EventStaffRoleChanged  = "staff.role_changed"
)

type StockAdded struct {
	StockItemID   StockItemID `json:"stock_item_id"`
	QuantityAdded Quantity    `json:"quantity_added"`
	NewTotal      Quantity    `json:"new_total"`
	At            time.Time   `json:"occurred_at"`
}

func (e StockAdded) EventName() string     { return EventStockAdded }
func (e StockAdded) OccurredAt() time.Time { return e.At }

type StockRemoved struct {
	StockItemID     StockItemID `json:"stock_item_id"`
	QuantityRemoved Quantity    `json:"quantity_removed"`
	NewTotal        Quantity    `json:"new_total"`
	At              time.Time   `json:"occurred_at"`
}

func (e StockRemoved) EventName() string     { return EventStockRemoved }
func (e StockRemoved) OccurredAt() time.Time { return e.At }

type StockAdjusted struct {
	StockItemID      StockItemID `json:"stock_item_id"`
	PreviousQuantity Quantity    `json:"previous_quantity"`
	NewQuantity      Quantity    `json:"new_quantity"`
	Reason           string      `json:"reason"`
	At               time.Time   `json:"occurred_at"`
}

func (e StockAdjusted) EventName() string     { return EventStockAdjusted }
func (e StockAdjusted) OccurredAt() time.Time { return e.At }

type LowStockAlertRaised struct {
	StockItemID     StockItemID `json:"stock_item_id"`
	ItemName        string      `json:"item_name"`
	CurrentQuantity Quantity    `json:"current_quantity"`
	Threshold       Quantity    `json:"threshold"`
	At              time.Time   `json:"occurred_at"`
}

func (e LowStockAlertRaised) EventName() string     { return EventLowStockAlert }
func (e LowStockAlertRaised) OccurredAt() time.Time { return e.At }

type ThresholdUpdated struct {
	StockItemID       StockItemID `json:"stock_item_id"`
	PreviousThreshold *Quantity   `json:"previous_threshold,omitempty"`
	NewThreshold      Quantity    `json:"new_threshold"`
	At                time.Time   `json:"occurred_at"`
}

func (e ThresholdUpdated) EventName() string     { return EventThresholdUpdated }
func (e ThresholdUpdated) OccurredAt() time.Time { return e.At }

type AllergensUpdated struct {
	StockItemID StockItemID `json:"stock_item_id"`
	ItemName    string      `json:"item_name"`
	Allergens   []Allergen  `json:"allergens"`
	At          time.Time   `json:"occurred_at"`
}

func (e AllergensUpdated) EventName() string     { return EventAllergensUpdated }
func (e AllergensUpdated) OccurredAt() time.Time { return e.At }
