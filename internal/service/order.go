package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stock-system/internal/domain"
	"stock-system/internal/repository"
)

// OrderItemInput is the caller's view of one requested line: a menu item
// reference plus quantity. Name and price are resolved and snapshotted
// by PlaceOrder.
type OrderItemInput struct {
	MenuItemID string
	Quantity   int
	Notes      string
}

type OrderService struct {
	orders repository.OrderRepositoryInterface
	menus  repository.MenuRepositoryInterface
	staff  repository.StaffRepositoryInterface
	eventDrainer
	lg *zap.Logger
}

func NewOrderService(orders repository.OrderRepositoryInterface, menus repository.MenuRepositoryInterface,
	staff repository.StaffRepositoryInterface, publisher EventPublisher, lg *zap.Logger) *OrderService {

	if lg == nil {
		lg = zap.NewNop()
	}
	return &OrderService{
		orders:       orders,
		menus:        menus,
		staff:        staff,
		eventDrainer: eventDrainer{publisher: publisher},
		lg:           lg,
	}
}

// PlaceOrder resolves the staff member and every requested menu item,
// verifies availability, snapshots name and price into order items, and
// persists the new pending order.
func (s *OrderService) PlaceOrder(ctx context.Context, staffID domain.StaffID, tableNumber *int, items []OrderItemInput) (*domain.Order, error) {
	staff, err := s.staff.FindByID(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	if staff == nil {
		return nil, &domain.StaffNotFoundError{ID: staffID}
	}

	menus, err := s.menus.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menus: %w", err)
	}
	menuItems := make(map[domain.MenuItemID]*domain.MenuItem)
	for _, menu := range menus {
		for _, item := range menu.Items() {
			menuItems[item.ID()] = item
		}
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, input := range items {
		menuItem, ok := menuItems[domain.MenuItemID(input.MenuItemID)]
		if !ok {
			return nil, &domain.MenuItemNotFoundError{ID: domain.MenuItemID(input.MenuItemID)}
		}
		if !menuItem.Available() {
			return nil, fmt.Errorf("menu item is not available: %s", menuItem.Name())
		}
		orderItem, err := domain.NewOrderItem(menuItem.ID(), menuItem.Name(), input.Quantity, menuItem.Price(), input.Notes)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, orderItem)
	}

	order := domain.CreateOrder(orderItems, tableNumber, staff.ID())
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	if err := s.drain(ctx, saved); err != nil {
		return nil, err
	}
	s.lg.Info("order_placed",
		zap.String("order_id", string(saved.ID())),
		zap.String("staff_id", string(staffID)),
		zap.Int("items", len(orderItems)),
		zap.String("total", saved.TotalAmount().String()))
	return saved, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *OrderService) GetBill(ctx context.Context, orderID domain.OrderID) (domain.Bill, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return domain.Bill{}, err
	}
	return order.GenerateBill(), nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID domain.OrderID, newStatus domain.OrderStatus) (*domain.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(newStatus); err != nil {
		return nil, err
	}
	return s.persist(ctx, order)
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(); err != nil {
		return nil, err
	}
	return s.persist(ctx, order)
}

func (s *OrderService) GetActiveOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.FindActiveOrders(ctx)
}

func (s *OrderService) GetOrdersByTable(ctx context.Context, tableNumber int) ([]*domain.Order, error) {
	return s.orders.FindByTableNumber(ctx, tableNumber)
}

func (s *OrderService) findOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, &domain.OrderNotFoundError{ID: orderID}
	}
	return order, nil
}

func (s *OrderService) persist(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	saved, err := s.orders.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	if err := s.drain(ctx, saved); err != nil {
		return nil, err
	}
	return saved, nil
}
