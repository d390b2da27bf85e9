package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stock-system/internal/connections/database"
	"stock-system/internal/domain"
)

type OrderPGRepository struct {
	db *database.Conn
}

func NewOrderPGRepository(db *database.Conn) *OrderPGRepository {
	return &OrderPGRepository{db: db}
}

// Save upserts the order, rewrites its item rows and appends a status
// log row in one transaction.
func (r *OrderPGRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, status, table_number, staff_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			table_number = EXCLUDED.table_number,
			updated_at = NOW()
	`, string(order.ID()), string(order.Status()), order.TableNumber(), string(order.StaffID()), order.CreatedAt())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert order: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, string(order.ID())); err != nil {
		return nil, fmt.Errorf("failed to clear order items: %w", err)
	}
	for position, item := range order.Items() {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, position, menu_item_id, menu_item_name, quantity, unit_price, currency, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, string(item.ID), string(order.ID()), position, string(item.MenuItemID), item.MenuItemName,
			item.Quantity, item.UnitPrice.Amount().String(), string(item.UnitPrice.Currency()), item.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item %q: %w", item.MenuItemName, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_at)
		VALUES ($1, $2, NOW())
	`, string(order.ID()), string(order.Status()))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}

func (r *OrderPGRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	orders, err := r.query(ctx, `SELECT id, status, table_number, staff_id, created_at FROM orders WHERE id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return orders[0], nil
}

func (r *OrderPGRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.query(ctx, `SELECT id, status, table_number, staff_id, created_at FROM orders WHERE status = $1 ORDER BY created_at`, string(status))
}

func (r *OrderPGRepository) FindByStaffID(ctx context.Context, staffID domain.StaffID) ([]*domain.Order, error) {
	return r.query(ctx, `SELECT id, status, table_number, staff_id, created_at FROM orders WHERE staff_id = $1 ORDER BY created_at`, string(staffID))
}

func (r *OrderPGRepository) FindByTableNumber(ctx context.Context, tableNumber int) ([]*domain.Order, error) {
	return r.query(ctx, `SELECT id, status, table_number, staff_id, created_at FROM orders WHERE table_number = $1 ORDER BY created_at`, tableNumber)
}

func (r *OrderPGRepository) FindActiveOrders(ctx context.Context) ([]*domain.Order, error) {
	statuses := make([]string, 0)
	for _, s := range domain.ActiveOrderStatuses() {
		statuses = append(statuses, string(s))
	}
	return r.query(ctx, `SELECT id, status, table_number, staff_id, created_at FROM orders WHERE status = ANY($1) ORDER BY created_at`, statuses)
}

func (r *OrderPGRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.query(ctx, `SELECT id, status, table_number, staff_id, created_at FROM orders ORDER BY created_at`)
}

func (r *OrderPGRepository) Delete(ctx context.Context, id domain.OrderID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (r *OrderPGRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	type orderRow struct {
		id          string
		status      string
		tableNumber *int
		staffID     string
		createdAt   time.Time
	}
	heads := make([]orderRow, 0)
	for rows.Next() {
		var row orderRow
		if err := rows.Scan(&row.id, &row.status, &row.tableNumber, &row.staffID, &row.createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		heads = append(heads, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(heads))
	for _, row := range heads {
		items, err := r.loadItems(ctx, row.id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, domain.ReconstituteOrder(
			domain.OrderID(row.id), items, domain.OrderStatus(row.status),
			row.tableNumber, domain.StaffID(row.staffID), row.createdAt))
	}
	return orders, nil
}

func (r *OrderPGRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, menu_item_id, menu_item_name, quantity, unit_price::text, currency, notes
		FROM order_items WHERE order_id = $1 ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var (
			id, menuItemID, name, priceAmount, currency, notes string
			quantity                                           int
		)
		if err := rows.Scan(&id, &menuItemID, &name, &quantity, &priceAmount, &currency, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		amount, err := decimal.NewFromString(priceAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid unit price %q: %w", priceAmount, err)
		}
		unitPrice, err := domain.NewPrice(amount, domain.Currency(currency))
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ID:           domain.OrderItemID(id),
			MenuItemID:   domain.MenuItemID(menuItemID),
			MenuItemName: name,
			Quantity:     quantity,
			UnitPrice:    unitPrice,
			Notes:        notes,
		})
	}
	return items, rows.Err()
}
