package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Permission is an atomic capability checked against a role's fixed set.
type Permission string

const (
	PermViewStock     Permission = "VIEW_STOCK"
	PermAddStock      Permission = "ADD_STOCK"
	PermRemoveStock   Permission = "REMOVE_STOCK"
	PermAdjustStock   Permission = "ADJUST_STOCK"
	PermSetThresholds Permission = "SET_THRESHOLDS"
	PermViewAuditLog  Permission = "VIEW_AUDIT_LOG"
	PermManageStaff   Permission = "MANAGE_STAFF"
)

const (
	RoleWorker  = "Worker"
	RoleManager = "Manager"
)

// StaffRole is a closed union of the Worker and Manager variants. The
// permission and location sets are fixed at construction; there is no
// open-ended role hierarchy.
type StaffRole struct {
	name        string
	permissions map[Permission]struct{}
	locations   map[Location]struct{}
}

// WorkerRole grants the day-to-day stock permissions for one location.
func WorkerRole(location Location) StaffRole {
	return StaffRole{
		name: RoleWorker,
		permissions: permissionSet(
			PermViewStock,
			PermAddStock,
			PermRemoveStock,
		),
		locations: locationSet(location),
	}
}

// ManagerRole grants every permission. With no locations given it covers
// all of them.
func ManagerRole(locations ...Location) StaffRole {
	if len(locations) == 0 {
		locations = AllLocations()
	}
	return StaffRole{
		name: RoleManager,
		permissions: permissionSet(
			PermViewStock,
			PermAddStock,
			PermRemoveStock,
			PermAdjustStock,
			PermSetThresholds,
			PermViewAuditLog,
			PermManageStaff,
		),
		locations: locationSet(locations...),
	}
}

func (r StaffRole) Name() string { return r.name }

func (r StaffRole) HasPermission(p Permission) bool {
	_, ok := r.permissions[p]
	return ok
}

func (r StaffRole) CanAccessLocation(l Location) bool {
	_, ok := r.locations[l]
	return ok
}

func (r StaffRole) Permissions() []Permission {
	out := make([]Permission, 0, len(r.permissions))
	for p := range r.permissions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r StaffRole) AllowedLocations() []Location {
	out := make([]Location, 0, len(r.locations))
	for l := range r.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r StaffRole) String() string { return r.name }

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func locationSet(locations ...Location) map[Location]struct{} {
	set := make(map[Location]struct{}, len(locations))
	for _, l := range locations {
		set[l] = struct{}{}
	}
	return set
}

type StaffName struct {
	first string
	last  string
}

func NewStaffName(firstName, lastName string) (StaffName, error) {
	if strings.TrimSpace(firstName) == "" {
		return StaffName{}, fmt.Errorf("first name cannot be blank")
	}
	if strings.TrimSpace(lastName) == "" {
		return StaffName{}, fmt.Errorf("last name cannot be blank")
	}
	return StaffName{first: firstName, last: lastName}, nil
}

func (n StaffName) FirstName() string { return n.first }
func (n StaffName) LastName() string  { return n.last }
func (n StaffName) FullName() string  { return n.first + " " + n.last }
func (n StaffName) String() string    { return n.FullName() }

type StaffRoleChanged struct {
	StaffID      StaffID   `json:"staff_id"`
	PreviousRole string    `json:"previous_role"`
	NewRole      string    `json:"new_role"`
	At           time.Time `json:"occurred_at"`
}

func (e StaffRoleChanged) EventName() string     { return EventStaffRoleChanged }
func (e StaffRoleChanged) OccurredAt() time.Time { return e.At }

// Staff is a staff member carrying a role; permission and location
// checks are pure delegations to the current role.
type Staff struct {
	eventRecorder
	id   StaffID
	name StaffName
	role StaffRole
}

func NewStaff(id StaffID, name StaffName, role StaffRole) *Staff {
	return &Staff{id: id, name: name, role: role}
}

func (s *Staff) ID() StaffID     { return s.id }
func (s *Staff) Name() StaffName { return s.name }
func (s *Staff) Role() StaffRole { return s.role }

func (s *Staff) HasPermission(p Permission) bool {
	return s.role.HasPermission(p)
}

func (s *Staff) CanAccessLocation(l Location) bool {
	return s.role.CanAccessLocation(l)
}

func (s *Staff) ChangeRole(newRole StaffRole) {
	previous := s.role
	s.role = newRole
	s.record(StaffRoleChanged{
		StaffID:      s.id,
		PreviousRole: previous.Name(),
		NewRole:      newRole.Name(),
		At:           time.Now().UTC(),
	})
}

func (s *Staff) PromoteToManager(locations ...Location) {
	s.ChangeRole(ManagerRole(locations...))
}

func (s *Staff) DemoteToWorker(location Location) {
	s.ChangeRole(WorkerRole(location))
}
