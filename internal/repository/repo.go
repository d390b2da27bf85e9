package repository

import (
	"context"

	"stock-system/internal/domain"
)

// Lookup methods return (nil, nil) when the aggregate is absent; the
// service layer translates absence into the typed not-found errors.

type StockRepositoryInterface interface {
	Save(ctx context.Context, item *domain.StockItem) (*domain.StockItem, error)
	FindByID(ctx context.Context, id domain.StockItemID) (*domain.StockItem, error)
	FindByLocation(ctx context.Context, location domain.Location) ([]*domain.StockItem, error)
	FindByCategory(ctx context.Context, category domain.StockCategory) ([]*domain.StockItem, error)
	FindAll(ctx context.Context) ([]*domain.StockItem, error)
	FindLowStockItems(ctx context.Context) ([]*domain.StockItem, error)
	FindByAllergen(ctx context.Context, allergen domain.Allergen) ([]*domain.StockItem, error)
	FindByAnyAllergen(ctx context.Context, allergens []domain.Allergen) ([]*domain.StockItem, error)
	Delete(ctx context.Context, id domain.StockItemID) error
}

type OrderRepositoryInterface interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	FindByStaffID(ctx context.Context, staffID domain.StaffID) ([]*domain.Order, error)
	FindByTableNumber(ctx context.Context, tableNumber int) ([]*domain.Order, error)
	FindActiveOrders(ctx context.Context) ([]*domain.Order, error)
	FindAll(ctx context.Context) ([]*domain.Order, error)
	Delete(ctx context.Context, id domain.OrderID) error
}

type MenuRepositoryInterface interface {
	Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error)
	FindByID(ctx context.Context, id domain.MenuID) (*domain.Menu, error)
	FindByType(ctx context.Context, menuType domain.MenuType) ([]*domain.Menu, error)
	FindByName(ctx context.Context, name string) (*domain.Menu, error)
	FindActive(ctx context.Context) ([]*domain.Menu, error)
	FindAll(ctx context.Context) ([]*domain.Menu, error)
	Delete(ctx context.Context, id domain.MenuID) error
}

type StaffRepositoryInterface interface {
	Save(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	FindByID(ctx context.Context, id domain.StaffID) (*domain.Staff, error)
	FindByRole(ctx context.Context, roleName string) ([]*domain.Staff, error)
	FindAll(ctx context.Context) ([]*domain.Staff, error)
	Delete(ctx context.Context, id domain.StaffID) error
}

// Repository bundles the four repositories for wiring.
type Repository struct {
	Stock StockRepositoryInterface
	Order OrderRepositoryInterface
	Menu  MenuRepositoryInterface
	Staff StaffRepositoryInterface
}
