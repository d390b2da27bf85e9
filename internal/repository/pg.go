package repository

import "stock-system/internal/connections/database"

// NewPGRepository bundles the Postgres-backed repositories over one pool.
func NewPGRepository(db *database.Conn) *Repository {
	return &Repository{
		Stock: NewStockPGRepository(db),
		Order: NewOrderPGRepository(db),
		Menu:  NewMenuPGRepository(db),
		Staff: NewStaffPGRepository(db),
	}
}
