package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stock-system/internal/domain"
	"stock-system/internal/repository"
)

// StockOperationService gates every stock mutation behind a permission
// check and a location check before touching the aggregate.
type StockOperationService struct {
	stock repository.StockRepositoryInterface
	eventDrainer
	lg *zap.Logger
}

func NewStockOperationService(stock repository.StockRepositoryInterface, publisher EventPublisher, lg *zap.Logger) *StockOperationService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &StockOperationService{stock: stock, eventDrainer: eventDrainer{publisher: publisher}, lg: lg}
}

// ViewStock lists items at one location. The access check runs against
// the requested location before any query.
func (s *StockOperationService) ViewStock(ctx context.Context, staff *domain.Staff, location domain.Location) ([]*domain.StockItem, error) {
	if err := requirePermission(staff, domain.PermViewStock); err != nil {
		return nil, err
	}
	if err := requireLocationAccess(staff, location); err != nil {
		return nil, err
	}
	return s.stock.FindByLocation(ctx, location)
}

// ViewAllStock lists every item at a location the staff member can access.
func (s *StockOperationService) ViewAllStock(ctx context.Context, staff *domain.Staff) ([]*domain.StockItem, error) {
	if err := requirePermission(staff, domain.PermViewStock); err != nil {
		return nil, err
	}
	items, err := s.stock.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterAccessible(staff, items), nil
}

func (s *StockOperationService) ViewLowStockItems(ctx context.Context, staff *domain.Staff) ([]*domain.StockItem, error) {
	if err := requirePermission(staff, domain.PermViewStock); err != nil {
		return nil, err
	}
	items, err := s.stock.FindLowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	return filterAccessible(staff, items), nil
}

func (s *StockOperationService) AddStock(ctx context.Context, staff *domain.Staff, id domain.StockItemID, quantity domain.Quantity) (*domain.StockItem, error) {
	return s.mutate(ctx, staff, domain.PermAddStock, id, func(item *domain.StockItem) error {
		return item.AddStock(quantity)
	})
}

func (s *StockOperationService) RemoveStock(ctx context.Context, staff *domain.Staff, id domain.StockItemID, quantity domain.Quantity) (*domain.StockItem, error) {
	return s.mutate(ctx, staff, domain.PermRemoveStock, id, func(item *domain.StockItem) error {
		return item.RemoveStock(quantity)
	})
}

func (s *StockOperationService) AdjustStock(ctx context.Context, staff *domain.Staff, id domain.StockItemID, newQuantity domain.Quantity, reason string) (*domain.StockItem, error) {
	return s.mutate(ctx, staff, domain.PermAdjustStock, id, func(item *domain.StockItem) error {
		return item.AdjustStock(newQuantity, reason)
	})
}

func (s *StockOperationService) SetLowStockThreshold(ctx context.Context, staff *domain.Staff, id domain.StockItemID, threshold domain.LowStockThreshold) (*domain.StockItem, error) {
	return s.mutate(ctx, staff, domain.PermSetThresholds, id, func(item *domain.StockItem) error {
		return item.SetLowStockThreshold(threshold)
	})
}

// mutate is the shared gate: permission, then load, then location, then
// the aggregate operation, then persist and drain events.
func (s *StockOperationService) mutate(ctx context.Context, staff *domain.Staff, perm domain.Permission,
	id domain.StockItemID, op func(*domain.StockItem) error) (*domain.StockItem, error) {

	if err := requirePermission(staff, perm); err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireLocationAccess(staff, item.Location()); err != nil {
		return nil, err
	}
	if err := op(item); err != nil {
		return nil, err
	}
	saved, err := s.stock.Save(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to save stock item: %w", err)
	}
	if err := s.drain(ctx, saved); err != nil {
		return nil, err
	}
	s.lg.Debug("stock_mutated",
		zap.String("stock_item_id", string(id)),
		zap.String("permission", string(perm)),
		zap.String("staff_id", string(staff.ID())))
	return saved, nil
}

func (s *StockOperationService) findItem(ctx context.Context, id domain.StockItemID) (*domain.StockItem, error) {
	item, err := s.stock.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock item: %w", err)
	}
	if item == nil {
		return nil, &domain.StockItemNotFoundError{ID: id}
	}
	return item, nil
}

func requirePermission(staff *domain.Staff, perm domain.Permission) error {
	if !staff.HasPermission(perm) {
		return &domain.PermissionDeniedError{Permission: perm, Role: staff.Role().Name()}
	}
	return nil
}

func requireLocationAccess(staff *domain.Staff, location domain.Location) error {
	if !staff.CanAccessLocation(location) {
		return &domain.LocationAccessDeniedError{StaffName: staff.Name().FullName(), Location: location}
	}
	return nil
}

func filterAccessible(staff *domain.Staff, items []*domain.StockItem) []*domain.StockItem {
	out := make([]*domain.StockItem, 0, len(items))
	for _, item := range items {
		if staff.CanAccessLocation(item.Location()) {
			out = append(out, item)
		}
	}
	return out
}

// StockQueryService answers stock questions that need no permission
// context, delegating to repository queries.
type StockQueryService struct {
	stock repository.StockRepositoryInterface
}

func NewStockQueryService(stock repository.StockRepositoryInterface) *StockQueryService {
	return &StockQueryService{stock: stock}
}

func (s *StockQueryService) FindLowStockItems(ctx context.Context) ([]*domain.StockItem, error) {
	return s.stock.FindLowStockItems(ctx)
}

func (s *StockQueryService) FindItemsWithAllergen(ctx context.Context, allergen domain.Allergen) ([]*domain.StockItem, error) {
	return s.stock.FindByAllergen(ctx, allergen)
}

func (s *StockQueryService) FindItemsContainingAnyAllergen(ctx context.Context, allergens []domain.Allergen) ([]*domain.StockItem, error) {
	return s.stock.FindByAnyAllergen(ctx, allergens)
}
