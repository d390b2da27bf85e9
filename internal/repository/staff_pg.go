package repository

import (
	"context"
	"fmt"

	"stock-system/internal/connections/database"
	"stock-system/internal/domain"
)

type StaffPGRepository struct {
	db *database.Conn
}

func NewStaffPGRepository(db *database.Conn) *StaffPGRepository {
	return &StaffPGRepository{db: db}
}

func (r *StaffPGRepository) Save(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	locations := make([]string, 0)
	for _, l := range staff.Role().AllowedLocations() {
		locations = append(locations, string(l))
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO staff (id, first_name, last_name, role, locations)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			locations = EXCLUDED.locations
	`, string(staff.ID()), staff.Name().FirstName(), staff.Name().LastName(),
		staff.Role().Name(), locations)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert staff: %w", err)
	}
	return staff, nil
}

func (r *StaffPGRepository) FindByID(ctx context.Context, id domain.StaffID) (*domain.Staff, error) {
	members, err := r.query(ctx, `SELECT id, first_name, last_name, role, locations FROM staff WHERE id = $1`, string(id))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	return members[0], nil
}

func (r *StaffPGRepository) FindByRole(ctx context.Context, roleName string) ([]*domain.Staff, error) {
	return r.query(ctx, `SELECT id, first_name, last_name, role, locations FROM staff WHERE role = $1 ORDER BY last_name`, roleName)
}

func (r *StaffPGRepository) FindAll(ctx context.Context) ([]*domain.Staff, error) {
	return r.query(ctx, `SELECT id, first_name, last_name, role, locations FROM staff ORDER BY last_name`)
}

func (r *StaffPGRepository) Delete(ctx context.Context, id domain.StaffID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}

func (r *StaffPGRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Staff, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	members := make([]*domain.Staff, 0)
	for rows.Next() {
		var (
			id, firstName, lastName, roleName string
			locationNames                     []string
		)
		if err := rows.Scan(&id, &firstName, &lastName, &roleName, &locationNames); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		name, err := domain.NewStaffName(firstName, lastName)
		if err != nil {
			return nil, err
		}
		role, err := roleFromRow(roleName, locationNames)
		if err != nil {
			return nil, err
		}
		members = append(members, domain.NewStaff(domain.StaffID(id), name, role))
	}
	return members, rows.Err()
}

func roleFromRow(roleName string, locationNames []string) (domain.StaffRole, error) {
	locations := make([]domain.Location, 0, len(locationNames))
	for _, l := range locationNames {
		locations = append(locations, domain.Location(l))
	}
	switch roleName {
	case domain.RoleWorker:
		if len(locations) != 1 {
			return domain.StaffRole{}, fmt.Errorf("worker role must have exactly one location, got %d", len(locations))
		}
		return domain.WorkerRole(locations[0]), nil
	case domain.RoleManager:
		return domain.ManagerRole(locations...), nil
	default:
		return domain.StaffRole{}, fmt.Errorf("unknown staff role %q", roleName)
	}
}
