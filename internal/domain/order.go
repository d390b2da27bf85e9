package domain

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderReady      OrderStatus = "READY"
	OrderServed     OrderStatus = "SERVED"
	OrderPaid       OrderStatus = "PAID"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// orderTransitions is the allowed status graph. PAID and CANCELLED are
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderReady, OrderCancelled},
	OrderReady:      {OrderServed, OrderCancelled},
	OrderServed:     {OrderPaid},
	OrderPaid:       {},
	OrderCancelled:  {},
}

// ActiveOrderStatuses are the statuses an order still in flight can hold.
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderInProgress, OrderReady, OrderServed}
}

// Order is a customer order. Items are mutable only while the order is
// pending; status changes follow the fixed transition graph.
type Order struct {
	eventRecorder
	id          OrderID
	items       []OrderItem
	status      OrderStatus
	tableNumber *int
	staffID     StaffID
	createdAt   time.Time
}

// CreateOrder builds a new pending order and records an OrderCreated
// event carrying the initial item list.
func CreateOrder(items []OrderItem, tableNumber *int, staffID StaffID) *Order {
	o := &Order{
		id:          NewOrderID(),
		items:       append([]OrderItem(nil), items...),
		status:      OrderPending,
		tableNumber: tableNumber,
		staffID:     staffID,
		createdAt:   time.Now().UTC(),
	}
	o.record(OrderCreated{
		OrderID:     o.id,
		TableNumber: tableNumber,
		StaffID:     staffID,
		Items:       o.Items(),
		At:          o.createdAt,
	})
	return o
}

// ReconstituteOrder rebuilds an order from persisted state without
// recording a creation event.
func ReconstituteOrder(id OrderID, items []OrderItem, status OrderStatus,
	tableNumber *int, staffID StaffID, createdAt time.Time) *Order {

	return &Order{
		id:          id,
		items:       append([]OrderItem(nil), items...),
		status:      status,
		tableNumber: tableNumber,
		staffID:     staffID,
		createdAt:   createdAt,
	}
}

func (o *Order) ID() OrderID          { return o.id }
func (o *Order) Status() OrderStatus  { return o.status }
func (o *Order) StaffID() StaffID     { return o.staffID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) TableNumber() *int {
	if o.tableNumber == nil {
		return nil
	}
	n := *o.tableNumber
	return &n
}

func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

func (o *Order) AddItem(item OrderItem) error {
	if o.status != OrderPending {
		return fmt.Errorf("cannot add items to a non-pending order")
	}
	o.items = append(o.items, item)
	return nil
}

func (o *Order) RemoveItem(itemID OrderItemID) error {
	if o.status != OrderPending {
		return fmt.Errorf("cannot remove items from a non-pending order")
	}
	kept := o.items[:0]
	for _, it := range o.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	o.items = kept
	return nil
}

func (o *Order) UpdateStatus(newStatus OrderStatus) error {
	allowed := false
	for _, s := range orderTransitions[o.status] {
		if s == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return &InvalidStatusTransitionError{From: o.status, To: newStatus}
	}
	previous := o.status
	o.status = newStatus
	o.record(OrderStatusChanged{
		OrderID:        o.id,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		At:             time.Now().UTC(),
	})
	return nil
}

// Cancel moves the order to CANCELLED from any non-terminal status.
func (o *Order) Cancel() error {
	if o.status == OrderPaid || o.status == OrderCancelled {
		return fmt.Errorf("cannot cancel a %s order", strings.ToLower(string(o.status)))
	}
	previous := o.status
	o.status = OrderCancelled
	o.record(OrderStatusChanged{
		OrderID:        o.id,
		PreviousStatus: previous,
		NewStatus:      OrderCancelled,
		At:             time.Now().UTC(),
	})
	return nil
}

// TotalAmount sums quantity x unit price over all items. All items are
// assumed to share one currency; an empty order totals to a zero price.
func (o *Order) TotalAmount() Price {
	if len(o.items) == 0 {
		return Price{}
	}
	total := o.items[0].TotalPrice()
	for _, it := range o.items[1:] {
		sum, err := total.Add(it.TotalPrice())
		if err != nil {
			// Mixed currencies are outside the model; keep the running total.
			continue
		}
		total = sum
	}
	return total
}

// GenerateBill produces a read-only snapshot of the order. It does not
// mutate the order or consume its pending events.
func (o *Order) GenerateBill() Bill {
	lines := make([]BillLineItem, 0, len(o.items))
	for _, it := range o.items {
		lines = append(lines, BillLineItem{
			Description: it.MenuItemName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice(),
		})
	}
	return Bill{
		OrderID:     o.id,
		Items:       lines,
		TotalAmount: o.TotalAmount(),
		TableNumber: o.TableNumber(),
		GeneratedAt: time.Now().UTC(),
	}
}
