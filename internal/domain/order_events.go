package domain

import "time"

type OrderCreated struct {
	OrderID     OrderID     `json:"order_id"`
	TableNumber *int        `json:"table_number,omitempty"`
	StaffID     StaffID     `json:"staff_id"`
	Items       []OrderItem `json:"items"`
	At          time.Time   `json:"occurred_at"`
}

func (e OrderCreated) EventName() string     { return EventOrderCreated }
func (e OrderCreated) OccurredAt() time.Time { return e.At }

type OrderStatusChanged struct {
	OrderID        OrderID     `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
	At             time.Time   `json:"occurred_at"`
}

func (e OrderStatusChanged) EventName() string     { return EventOrderStatusChange }
func (e OrderStatusChanged) OccurredAt() time.Time { return e.At }
