package domain

import (
	"fmt"
	"strings"
)

const maxOrderItemQuantity = 99

// OrderItem is a snapshot of a menu item at order time. Name and unit
// price are copied when the order is placed and never re-derived from the
// live menu item, so later menu changes cannot alter historical bills.
// MenuItemID is kept for reference and audit only.
type OrderItem struct {
	ID           OrderItemID `json:"id"`
	MenuItemID   MenuItemID  `json:"menu_item_id"`
	MenuItemName string      `json:"menu_item_name"`
	Quantity     int         `json:"quantity"`
	UnitPrice    Price       `json:"unit_price"`
	Notes        string      `json:"notes,omitempty"`
}

func NewOrderItem(menuItemID MenuItemID, menuItemName string, quantity int, unitPrice Price, notes string) (OrderItem, error) {
	if strings.TrimSpace(menuItemName) == "" {
		return OrderItem{}, fmt.Errorf("menu item name cannot be blank")
	}
	if quantity <= 0 {
		return OrderItem{}, fmt.Errorf("order item quantity must be positive")
	}
	if quantity > maxOrderItemQuantity {
		return OrderItem{}, fmt.Errorf("order item quantity cannot exceed %d", maxOrderItemQuantity)
	}
	return OrderItem{
		ID:           NewOrderItemID(),
		MenuItemID:   menuItemID,
		MenuItemName: menuItemName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Notes:        notes,
	}, nil
}

func (i OrderItem) TotalPrice() Price {
	return i.UnitPrice.MulInt(i.Quantity)
}
