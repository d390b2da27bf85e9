package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-system/internal/domain"
	"stock-system/internal/repository"
)

// capturePublisher records published events in order.
type capturePublisher struct {
	events []domain.DomainEvent
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, events []domain.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func newStockFixture(t *testing.T) (*StockOperationService, *repository.MemoryStockRepository, *capturePublisher) {
	t.Helper()
	repo := repository.NewMemoryStockRepository()
	pub := &capturePublisher{}
	return NewStockOperationService(repo, pub, nil), repo, pub
}

func seedItem(t *testing.T, repo *repository.MemoryStockRepository, name string,
	category domain.StockCategory, qty float64, unit domain.Unit, threshold *float64) *domain.StockItem {

	t.Helper()
	var th *domain.LowStockThreshold
	if threshold != nil {
		v := domain.NewLowStockThreshold(domain.MustQuantity(*threshold, unit))
		th = &v
	}
	item, err := domain.NewStockItem(domain.NewStockItemID(), name, category,
		domain.MustQuantity(qty, unit), th)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), item)
	require.NoError(t, err)
	return item
}

func barWorker(t *testing.T) *domain.Staff {
	t.Helper()
	name, err := domain.NewStaffName("Tom", "Barker")
	require.NoError(t, err)
	return domain.NewStaff(domain.NewStaffID(), name, domain.WorkerRole(domain.LocationBar))
}

func manager(t *testing.T) *domain.Staff {
	t.Helper()
	name, err := domain.NewStaffName("Rosa", "Marchetti")
	require.NoError(t, err)
	return domain.NewStaff(domain.NewStaffID(), name, domain.ManagerRole())
}

func TestAddStockHappyPath(t *testing.T) {
	svc, repo, pub := newStockFixture(t)
	item := seedItem(t, repo, "Tanqueray Gin", domain.CategorySpirits, 10, domain.UnitLiters, nil)

	saved, err := svc.AddStock(context.Background(), barWorker(t), item.ID(), domain.MustQuantity(5, domain.UnitLiters))
	require.NoError(t, err)
	assert.Equal(t, "15.00 liters", saved.Quantity().String())

	// events were published and the buffer drained
	require.Len(t, pub.events, 1)
	assert.Equal(t, "stock.added", pub.events[0].EventName())
	assert.Empty(t, saved.Events())
}

func TestRemoveStockPublishesLowStockAlert(t *testing.T) {
	svc, repo, pub := newStockFixture(t)
	item := seedItem(t, repo, "Absolut Vodka", domain.CategorySpirits, 10, domain.UnitBottles, floatPtr(5))

	saved, err := svc.RemoveStock(context.Background(), barWorker(t), item.ID(), domain.MustQuantity(6, domain.UnitBottles))
	require.NoError(t, err)
	assert.Equal(t, "4.00 bottles", saved.Quantity().String())

	require.Len(t, pub.events, 2)
	assert.Equal(t, "stock.removed", pub.events[0].EventName())
	alert, ok := pub.events[1].(domain.LowStockAlertRaised)
	require.True(t, ok)
	assert.Equal(t, "Absolut Vodka", alert.ItemName)
	assert.Equal(t, "4.00 bottles", alert.CurrentQuantity.String())
}

func TestWorkerDeniedManagerPermissions(t *testing.T) {
	svc, repo, _ := newStockFixture(t)
	item := seedItem(t, repo, "Tanqueray Gin", domain.CategorySpirits, 10, domain.UnitLiters, nil)
	worker := barWorker(t)

	_, err := svc.AdjustStock(context.Background(), worker, item.ID(), domain.MustQuantity(3, domain.UnitLiters), "stocktake")
	var denied *domain.PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, domain.PermAdjustStock, denied.Permission)
	assert.Equal(t, domain.RoleWorker, denied.Role)

	_, err = svc.SetLowStockThreshold(context.Background(), worker, item.ID(),
		domain.NewLowStockThreshold(domain.MustQuantity(5, domain.UnitLiters)))
	require.ErrorAs(t, err, &denied)

	// nothing was changed
	assert.Equal(t, "10.00 liters", item.Quantity().String())
}

func TestWorkerDeniedOtherLocation(t *testing.T) {
	svc, repo, pub := newStockFixture(t)
	item := seedItem(t, repo, "Cod Fillet", domain.CategoryProteins, 15, domain.UnitKilograms, nil)

	_, err := svc.AddStock(context.Background(), barWorker(t), item.ID(), domain.MustQuantity(1, domain.UnitKilograms))
	var denied *domain.LocationAccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, domain.LocationKitchen, denied.Location)
	assert.Empty(t, pub.events)

	_, err = svc.ViewStock(context.Background(), barWorker(t), domain.LocationKitchen)
	require.ErrorAs(t, err, &denied)
}

func TestManagerCanAdjustAnywhere(t *testing.T) {
	svc, repo, _ := newStockFixture(t)
	item := seedItem(t, repo, "Cod Fillet", domain.CategoryProteins, 15, domain.UnitKilograms, nil)

	saved, err := svc.AdjustStock(context.Background(), manager(t), item.ID(),
		domain.MustQuantity(12.5, domain.UnitKilograms), "stocktake correction")
	require.NoError(t, err)
	assert.Equal(t, "12.50 kg", saved.Quantity().String())
}

func TestMutateUnknownItem(t *testing.T) {
	svc, _, _ := newStockFixture(t)

	_, err := svc.AddStock(context.Background(), manager(t), domain.NewStockItemID(), domain.MustQuantity(1, domain.UnitBottles))
	var notFound *domain.StockItemNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestViewAllStockFiltersByAccessibleLocation(t *testing.T) {
	svc, repo, _ := newStockFixture(t)
	seedItem(t, repo, "Tanqueray Gin", domain.CategorySpirits, 10, domain.UnitLiters, nil)
	seedItem(t, repo, "Cod Fillet", domain.CategoryProteins, 15, domain.UnitKilograms, nil)

	items, err := svc.ViewAllStock(context.Background(), barWorker(t))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tanqueray Gin", items[0].Name())

	items, err = svc.ViewAllStock(context.Background(), manager(t))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestViewLowStockItems(t *testing.T) {
	svc, repo, _ := newStockFixture(t)
	seedItem(t, repo, "Absolut Vodka", domain.CategorySpirits, 4, domain.UnitBottles, floatPtr(5))
	seedItem(t, repo, "Tanqueray Gin", domain.CategorySpirits, 10, domain.UnitLiters, nil)

	items, err := svc.ViewLowStockItems(context.Background(), barWorker(t))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Absolut Vodka", items[0].Name())
}

func TestPublishFailurePropagates(t *testing.T) {
	repo := repository.NewMemoryStockRepository()
	pub := &capturePublisher{err: errors.New("broker down")}
	svc := NewStockOperationService(repo, pub, nil)
	item := seedItem(t, repo, "Tanqueray Gin", domain.CategorySpirits, 10, domain.UnitLiters, nil)

	_, err := svc.AddStock(context.Background(), manager(t), item.ID(), domain.MustQuantity(1, domain.UnitLiters))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNilPublisherDropsEvents(t *testing.T) {
	repo := repository.NewMemoryStockRepository()
	svc := NewStockOperationService(repo, nil, nil)
	item := seedItem(t, repo, "Tanqueray Gin", domain.CategorySpirits, 10, domain.UnitLiters, nil)

	saved, err := svc.AddStock(context.Background(), manager(t), item.ID(), domain.MustQuantity(1, domain.UnitLiters))
	require.NoError(t, err)
	assert.Empty(t, saved.Events())
}

func TestStockQueryService(t *testing.T) {
	repo := repository.NewMemoryStockRepository()
	svc := NewStockQueryService(repo)
	ctx := context.Background()

	lager, err := domain.NewStockItem(domain.NewStockItemID(), "Peroni", domain.CategoryBeer,
		domain.MustQuantity(20, domain.UnitBottles), nil, domain.AllergenGluten)
	require.NoError(t, err)
	_, err = repo.Save(ctx, lager)
	require.NoError(t, err)

	cider, err := domain.NewStockItem(domain.NewStockItemID(), "Aspall Cyder", domain.CategoryBeer,
		domain.MustQuantity(100, domain.UnitBottles), nil, domain.AllergenSulphites)
	require.NoError(t, err)
	_, err = repo.Save(ctx, cider)
	require.NoError(t, err)

	items, err := svc.FindItemsWithAllergen(ctx, domain.AllergenGluten)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Peroni", items[0].Name())

	items, err = svc.FindItemsContainingAnyAllergen(ctx, []domain.Allergen{domain.AllergenGluten, domain.AllergenSulphites})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.FindLowStockItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func floatPtr(v float64) *float64 { return &v }
