package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"stock-system/internal/connections/database"
	"stock-system/internal/domain"
)

type MenuPGRepository struct {
	db *database.Conn
}

func NewMenuPGRepository(db *database.Conn) *MenuPGRepository {
	return &MenuPGRepository{db: db}
}

func (r *MenuPGRepository) Save(ctx context.Context, menu *domain.Menu) (*domain.Menu, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO menus (id, name, description, type, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			active = EXCLUDED.active
	`, string(menu.ID()), menu.Name(), menu.Description(), string(menu.Type()), menu.Active())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert menu: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE menu_id = $1`, string(menu.ID())); err != nil {
		return nil, fmt.Errorf("failed to clear menu items: %w", err)
	}
	for _, item := range menu.Items() {
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_items (id, menu_id, name, description, price, currency, available)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, string(item.ID()), string(menu.ID()), item.Name(), item.Description(),
			item.Price().Amount().String(), string(item.Price().Currency()), item.Available())
		if err != nil {
			return nil, fmt.Errorf("failed to insert menu item %q: %w", item.Name(), err)
		}
		for _, ing := range item.Ingredients() {
			_, err := tx.Exec(ctx, `
				INSERT INTO menu_item_ingredients (menu_item_id, stock_item_id, quantity_per_serving, unit)
				VALUES ($1, $2, $3, $4)
			`, string(item.ID()), string(ing.StockItemID),
				ing.QuantityPerServing.Amount().String(), string(ing.QuantityPerServing.Unit()))
			if err != nil {
				return nil, fmt.Errorf("failed to insert menu item ingredient: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return menu, nil
}

func (r *MenuPGRepository) FindByID(ctx context.Context, id domain.MenuID) (*domain.Menu, error) {
	menus, err := r.query(ctx, `SELECT id, name, description, type, active FROM menus WHERE id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, nil
	}
	return menus[0], nil
}

func (r *MenuPGRepository) FindByType(ctx context.Context, menuType domain.MenuType) ([]*domain.Menu, error) {
	return r.query(ctx, `SELECT id, name, description, type, active FROM menus WHERE type = $1 ORDER BY name`, string(menuType))
}

func (r *MenuPGRepository) FindByName(ctx context.Context, name string) (*domain.Menu, error) {
	menus, err := r.query(ctx, `SELECT id, name, description, type, active FROM menus WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return nil, nil
	}
	return menus[0], nil
}

func (r *MenuPGRepository) FindActive(ctx context.Context) ([]*domain.Menu, error) {
	return r.query(ctx, `SELECT id, name, description, type, active FROM menus WHERE active ORDER BY name`)
}

func (r *MenuPGRepository) FindAll(ctx context.Context) ([]*domain.Menu, error) {
	return r.query(ctx, `SELECT id, name, description, type, active FROM menus ORDER BY name`)
}

func (r *MenuPGRepository) Delete(ctx context.Context, id domain.MenuID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM menus WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	return nil
}

func (r *MenuPGRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Menu, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	type menuRow struct {
		id, name, description, menuType string
		active                          bool
	}
	heads := make([]menuRow, 0)
	for rows.Next() {
		var row menuRow
		if err := rows.Scan(&row.id, &row.name, &row.description, &row.menuType, &row.active); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		heads = append(heads, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	menus := make([]*domain.Menu, 0, len(heads))
	for _, row := range heads {
		items, err := r.loadItems(ctx, row.id)
		if err != nil {
			return nil, err
		}
		menu, err := domain.NewMenu(domain.MenuID(row.id), row.name, row.description,
			domain.MenuType(row.menuType), items, row.active)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

func (r *MenuPGRepository) loadItems(ctx context.Context, menuID string) ([]*domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price::text, currency, available
		FROM menu_items WHERE menu_id = $1 ORDER BY name
	`, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	type itemRow struct {
		id, name, description, priceAmount, currency string
		available                                    bool
	}
	heads := make([]itemRow, 0)
	for rows.Next() {
		var row itemRow
		if err := rows.Scan(&row.id, &row.name, &row.description, &row.priceAmount, &row.currency, &row.available); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		heads = append(heads, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items := make([]*domain.MenuItem, 0, len(heads))
	for _, row := range heads {
		amount, err := decimal.NewFromString(row.priceAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid menu item price %q: %w", row.priceAmount, err)
		}
		price, err := domain.NewPrice(amount, domain.Currency(row.currency))
		if err != nil {
			return nil, err
		}
		ingredients, err := r.loadIngredients(ctx, row.id)
		if err != nil {
			return nil, err
		}
		item, err := domain.NewMenuItem(domain.MenuItemID(row.id), row.name, row.description,
			price, ingredients, row.available)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *MenuPGRepository) loadIngredients(ctx context.Context, menuItemID string) ([]domain.MenuItemIngredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT stock_item_id, quantity_per_serving::text, unit
		FROM menu_item_ingredients WHERE menu_item_id = $1
	`, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu item ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]domain.MenuItemIngredient, 0)
	for rows.Next() {
		var stockItemID, amountStr, unit string
		if err := rows.Scan(&stockItemID, &amountStr, &unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient quantity %q: %w", amountStr, err)
		}
		quantity, err := domain.NewQuantity(amount, domain.Unit(unit))
		if err != nil {
			return nil, err
		}
		ing, err := domain.NewMenuItemIngredient(domain.StockItemID(stockItemID), quantity)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}
