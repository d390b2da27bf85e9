package repository

import (
	"context"
	"strings"
	"sync"

	"stock-system/internal/domain"
)

// In-memory repositories backing tests and local seeding. Aggregates are
// stored by reference; callers own single-writer discipline, as at any
// other storage boundary.

type MemoryStockRepository struct {
	mu    sync.RWMutex
	items map[domain.StockItemID]*domain.StockItem
}

func NewMemoryStockRepository() *MemoryStockRepository {
	return &MemoryStockRepository{items: make(map[domain.StockItemID]*domain.StockItem)}
}

func (r *MemoryStockRepository) Save(_ context.Context, item *domain.StockItem) (*domain.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID()] = item
	return item, nil
}

func (r *MemoryStockRepository) FindByID(_ context.Context, id domain.StockItemID) (*domain.StockItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id], nil
}

func (r *MemoryStockRepository) FindByLocation(_ context.Context, location domain.Location) ([]*domain.StockItem, error) {
	return r.filter(func(item *domain.StockItem) bool { return item.Location() == location }), nil
}

func (r *MemoryStockRepository) FindByCategory(_ context.Context, category domain.StockCategory) ([]*domain.StockItem, error) {
	return r.filter(func(item *domain.StockItem) bool { return item.Category() == category }), nil
}

func (r *MemoryStockRepository) FindAll(_ context.Context) ([]*domain.StockItem, error) {
	return r.filter(func(*domain.StockItem) bool { return true }), nil
}

func (r *MemoryStockRepository) FindLowStockItems(_ context.Context) ([]*domain.StockItem, error) {
	return r.filter(func(item *domain.StockItem) bool { return item.IsLowStock() }), nil
}

func (r *MemoryStockRepository) FindByAllergen(_ context.Context, allergen domain.Allergen) ([]*domain.StockItem, error) {
	return r.filter(func(item *domain.StockItem) bool { return item.ContainsAllergen(allergen) }), nil
}

func (r *MemoryStockRepository) FindByAnyAllergen(_ context.Context, allergens []domain.Allergen) ([]*domain.StockItem, error) {
	return r.filter(func(item *domain.StockItem) bool {
		for _, a := range allergens {
			if item.ContainsAllergen(a) {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryStockRepository) Delete(_ context.Context, id domain.StockItemID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *MemoryStockRepository) filter(keep func(*domain.StockItem) bool) []*domain.StockItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.StockItem, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[domain.OrderID]*domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[domain.OrderID]*domain.Order)}
}

func (r *MemoryOrderRepository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID()] = order
	return order, nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.orders[id], nil
}

func (r *MemoryOrderRepository) FindByStatus(_ context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.Status() == status }), nil
}

func (r *MemoryOrderRepository) FindByStaffID(_ context.Context, staffID domain.StaffID) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool { return o.StaffID() == staffID }), nil
}

func (r *MemoryOrderRepository) FindByTableNumber(_ context.Context, tableNumber int) ([]*domain.Order, error) {
	return r.filter(func(o *domain.Order) bool {
		t := o.TableNumber()
		return t != nil && *t == tableNumber
	}), nil
}

func (r *MemoryOrderRepository) FindActiveOrders(_ context.Context) ([]*domain.Order, error) {
	active := domain.ActiveOrderStatuses()
	return r.filter(func(o *domain.Order) bool {
		for _, s := range active {
			if o.Status() == s {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryOrderRepository) FindAll(_ context.Context) ([]*domain.Order, error) {
	return r.filter(func(*domain.Order) bool { return true }), nil
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id domain.OrderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

func (r *MemoryOrderRepository) filter(keep func(*domain.Order) bool) []*domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0)
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

type MemoryMenuRepository struct {
	mu    sync.RWMutex
	menus map[domain.MenuID]*domain.Menu
}

func NewMemoryMenuRepository() *MemoryMenuRepository {
	return &MemoryMenuRepository{menus: make(map[domain.MenuID]*domain.Menu)}
}

func (r *MemoryMenuRepository) Save(_ context.Context, menu *domain.Menu) (*domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[menu.ID()] = menu
	return menu, nil
}

func (r *MemoryMenuRepository) FindByID(_ context.Context, id domain.MenuID) (*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.menus[id], nil
}

func (r *MemoryMenuRepository) FindByType(_ context.Context, menuType domain.MenuType) ([]*domain.Menu, error) {
	return r.filter(func(m *domain.Menu) bool { return m.Type() == menuType }), nil
}

func (r *MemoryMenuRepository) FindByName(_ context.Context, name string) (*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.menus {
		if strings.EqualFold(m.Name(), name) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *MemoryMenuRepository) FindActive(_ context.Context) ([]*domain.Menu, error) {
	return r.filter(func(m *domain.Menu) bool { return m.Active() }), nil
}

func (r *MemoryMenuRepository) FindAll(_ context.Context) ([]*domain.Menu, error) {
	return r.filter(func(*domain.Menu) bool { return true }), nil
}

func (r *MemoryMenuRepository) Delete(_ context.Context, id domain.MenuID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.menus, id)
	return nil
}

func (r *MemoryMenuRepository) filter(keep func(*domain.Menu) bool) []*domain.Menu {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Menu, 0)
	for _, m := range r.menus {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

type MemoryStaffRepository struct {
	mu    sync.RWMutex
	staff map[domain.StaffID]*domain.Staff
}

func NewMemoryStaffRepository() *MemoryStaffRepository {
	return &MemoryStaffRepository{staff: make(map[domain.StaffID]*domain.Staff)}
}

func (r *MemoryStaffRepository) Save(_ context.Context, staff *domain.Staff) (*domain.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staff[staff.ID()] = staff
	return staff, nil
}

func (r *MemoryStaffRepository) FindByID(_ context.Context, id domain.StaffID) (*domain.Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.staff[id], nil
}

func (r *MemoryStaffRepository) FindByRole(_ context.Context, roleName string) ([]*domain.Staff, error) {
	return r.filter(func(s *domain.Staff) bool { return s.Role().Name() == roleName }), nil
}

func (r *MemoryStaffRepository) FindAll(_ context.Context) ([]*domain.Staff, error) {
	return r.filter(func(*domain.Staff) bool { return true }), nil
}

func (r *MemoryStaffRepository) Delete(_ context.Context, id domain.StaffID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.staff, id)
	return nil
}

func (r *MemoryStaffRepository) filter(keep func(*domain.Staff) bool) []*domain.Staff {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Staff, 0)
	for _, s := range r.staff {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// NewMemoryRepository bundles fresh in-memory repositories.
func NewMemoryRepository() *Repository {
	return &Repository{
		Stock: NewMemoryStockRepository(),
		Order: NewMemoryOrderRepository(),
		Menu:  NewMemoryMenuRepository(),
		Staff: NewMemoryStaffRepository(),
	}
}
