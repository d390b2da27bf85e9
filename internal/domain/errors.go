package domain

import "fmt"

// InvalidQuantityError covers negative amounts and unit mismatches in
// quantity construction, arithmetic and comparison.
type InvalidQuantityError struct {
	Reason string
}

func (e *InvalidQuantityError) Error() string {
	return "invalid quantity: " + e.Reason
}

// InsufficientStockError is returned when a removal requests more than
// the currently available quantity.
type InsufficientStockError struct {
	ItemName  string
	Requested Quantity
	Available Quantity
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %s but only %s available",
		e.ItemName, e.Requested, e.Available)
}

// PermissionDeniedError is returned when a staff member's role lacks the
// permission an operation requires.
type PermissionDeniedError struct {
	Permission Permission
	Role       string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission %q denied for role %q", e.Permission, e.Role)
}

// LocationAccessDeniedError is returned when a staff member's role does
// not grant access to the target location.
type LocationAccessDeniedError struct {
	StaffName string
	Location  Location
}

func (e *LocationAccessDeniedError) Error() string {
	return fmt.Sprintf("staff %q does not have access to location %q", e.StaffName, e.Location)
}

// InvalidStatusTransitionError is returned when an order status change
// falls outside the allowed transition graph.
type InvalidStatusTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

type StockItemNotFoundError struct{ ID StockItemID }

func (e *StockItemNotFoundError) Error() string {
	return fmt.Sprintf("stock item not found: %s", e.ID)
}

type OrderNotFoundError struct{ ID OrderID }

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found: %s", e.ID)
}

type StaffNotFoundError struct{ ID StaffID }

func (e *StaffNotFoundError) Error() string {
	return fmt.Sprintf("staff not found: %s", e.ID)
}

type MenuItemNotFoundError struct{ ID MenuItemID }

func (e *MenuItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item not found: %s", e.ID)
}
