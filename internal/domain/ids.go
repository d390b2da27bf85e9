package domain

import "github.com/google/uuid"

type (
	StockItemID string
	OrderID     string
	OrderItemID string
	StaffID     string
	MenuID      string
	MenuItemID  string
)

func NewStockItemID() StockItemID { return StockItemID(uuid.NewString()) }
func NewOrderID() OrderID         { return OrderID(uuid.NewString()) }
func NewOrderItemID() OrderItemID { return OrderItemID(uuid.NewString()) }
func NewStaffID() StaffID         { return StaffID(uuid.NewString()) }
func NewMenuID() MenuID           { return MenuID(uuid.NewString()) }
func NewMenuItemID() MenuItemID   { return MenuItemID(uuid.NewString()) }
