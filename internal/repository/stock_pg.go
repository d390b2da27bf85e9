package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"stock-system/internal/connections/database"
	"stock-system/internal/domain"
)

type StockPGRepository struct {
	db *database.Conn
}

func NewStockPGRepository(db *database.Conn) *StockPGRepository {
	return &StockPGRepository{db: db}
}

const stockColumns = `id, name, category, quantity_amount::text, quantity_unit, threshold_amount::text, allergens`

// Save upserts the item and appends its pending events to the
// stock_events audit table in one transaction. Events stay on the
// aggregate; the service layer drains them after publishing.
func (r *StockPGRepository) Save(ctx context.Context, item *domain.StockItem) (*domain.StockItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var thresholdAmount *string
	if t := item.LowStockThreshold(); t != nil {
		s := t.Quantity().Amount().String()
		thresholdAmount = &s
	}
	allergens := make([]string, 0)
	for _, a := range item.Allergens() {
		allergens = append(allergens, string(a))
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO stock_items (id, name, category, quantity_amount, quantity_unit, threshold_amount, allergens, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			quantity_amount = EXCLUDED.quantity_amount,
			quantity_unit = EXCLUDED.quantity_unit,
			threshold_amount = EXCLUDED.threshold_amount,
			allergens = EXCLUDED.allergens,
			updated_at = NOW()
	`, string(item.ID()), item.Name(), string(item.Category()),
		item.Quantity().Amount().String(), string(item.Quantity().Unit()),
		thresholdAmount, allergens)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert stock item: %w", err)
	}

	for _, event := range item.Events() {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal stock event: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO stock_events (stock_item_id, event_name, payload, occurred_at)
			VALUES ($1, $2, $3, $4)
		`, string(item.ID()), event.EventName(), payload, event.OccurredAt())
		if err != nil {
			return nil, fmt.Errorf("failed to insert stock event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return item, nil
}

func (r *StockPGRepository) FindByID(ctx context.Context, id domain.StockItemID) (*domain.StockItem, error) {
	items, err := r.query(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

func (r *StockPGRepository) FindByLocation(ctx context.Context, location domain.Location) ([]*domain.StockItem, error) {
	categories := make([]string, 0)
	for _, c := range categoriesForLocation(location) {
		categories = append(categories, string(c))
	}
	return r.query(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE category = ANY($1) ORDER BY name`, categories)
}

func (r *StockPGRepository) FindByCategory(ctx context.Context, category domain.StockCategory) ([]*domain.StockItem, error) {
	return r.query(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE category = $1 ORDER BY name`, string(category))
}

func (r *StockPGRepository) FindAll(ctx context.Context) ([]*domain.StockItem, error) {
	return r.query(ctx, `SELECT ` + stockColumns + ` FROM stock_items ORDER BY name`)
}

func (r *StockPGRepository) FindLowStockItems(ctx context.Context) ([]*domain.StockItem, error) {
	return r.query(ctx, `
		SELECT `+stockColumns+` FROM stock_items
		WHERE threshold_amount IS NOT NULL AND quantity_amount <= threshold_amount
		ORDER BY name`)
}

func (r *StockPGRepository) FindByAllergen(ctx context.Context, allergen domain.Allergen) ([]*domain.StockItem, error) {
	return r.query(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE $1 = ANY(allergens) ORDER BY name`, string(allergen))
}

func (r *StockPGRepository) FindByAnyAllergen(ctx context.Context, allergens []domain.Allergen) ([]*domain.StockItem, error) {
	set := make([]string, 0, len(allergens))
	for _, a := range allergens {
		set = append(set, string(a))
	}
	return r.query(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE allergens && $1 ORDER BY name`, set)
}

func (r *StockPGRepository) Delete(ctx context.Context, id domain.StockItemID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete stock item: %w", err)
	}
	return nil
}

func (r *StockPGRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.StockItem, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock items: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.StockItem, 0)
	for rows.Next() {
		var (
			id, name, category, quantityAmount, quantityUnit string
			thresholdAmount                                  *string
			allergenNames                                    []string
		)
		if err := rows.Scan(&id, &name, &category, &quantityAmount, &quantityUnit, &thresholdAmount, &allergenNames); err != nil {
			return nil, fmt.Errorf("failed to scan stock item: %w", err)
		}
		item, err := rowToStockItem(id, name, category, quantityAmount, quantityUnit, thresholdAmount, allergenNames)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func rowToStockItem(id, name, category, quantityAmount, quantityUnit string,
	thresholdAmount *string, allergenNames []string) (*domain.StockItem, error) {

	amount, err := decimal.NewFromString(quantityAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity amount %q: %w", quantityAmount, err)
	}
	unit := domain.Unit(quantityUnit)
	quantity, err := domain.NewQuantity(amount, unit)
	if err != nil {
		return nil, err
	}

	var threshold *domain.LowStockThreshold
	if thresholdAmount != nil {
		ta, err := decimal.NewFromString(*thresholdAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold amount %q: %w", *thresholdAmount, err)
		}
		tq, err := domain.NewQuantity(ta, unit)
		if err != nil {
			return nil, err
		}
		t := domain.NewLowStockThreshold(tq)
		threshold = &t
	}

	allergens := make([]domain.Allergen, 0, len(allergenNames))
	for _, a := range allergenNames {
		allergens = append(allergens, domain.Allergen(a))
	}

	return domain.NewStockItem(domain.StockItemID(id), name, domain.StockCategory(category),
		quantity, threshold, allergens...)
}

func categoriesForLocation(location domain.Location) []domain.StockCategory {
	all := []domain.StockCategory{
		domain.CategorySpirits, domain.CategoryWine, domain.CategoryBeer,
		domain.CategoryMixers, domain.CategoryGarnishes,
		domain.CategoryProteins, domain.CategoryVegetables, domain.CategoryDairy,
		domain.CategoryDryGoods, domain.CategorySpices, domain.CategoryFrozen,
	}
	out := make([]domain.StockCategory, 0)
	for _, c := range all {
		if c.Location() == location {
			out = append(out, c)
		}
	}
	return out
}
