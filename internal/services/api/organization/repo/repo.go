// Package repo provides the organization repository implementation
package repo

import (
	"context"
	"time"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/organization/domain"

	"github.com/google/uuid"
)

// Repo is the organization persistence surface used by the service layer
// Missing rows are reported as perr.ErrNotFound
type Repo interface {
	InsertDepartment(ctx context.Context, d domain.Department, key string) (domain.Department, error)
	RenameDepartment(ctx context.Context, id uuid.UUID, name, key string) (domain.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
	DepartmentByID(ctx context.Context, id uuid.UUID) (domain.Department, error)
	Departments(ctx context.Context) ([]domain.Department, error)
	// DepartmentInUse reports whether rooms or users still reference the department
	DepartmentInUse(ctx context.Context, id uuid.UUID) (bool, error)

	InsertUser(ctx context.Context, u domain.User, emailKey string) (domain.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	Users(ctx context.Context, f domain.UserFilter) ([]domain.User, error)

	RoomDepartment(ctx context.Context, roomID uuid.UUID) (uuid.UUID, error)
	UpsertStaff(ctx context.Context, userID, roomID uuid.UUID) (time.Time, error)
	DeleteStaff(ctx context.Context, userID uuid.UUID) error
	StaffByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.Staff, error)
}

type (
	// PG is a Postgres implementation of the organization repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const departmentCols = `id, name, created_at`

func scanDepartment(r store.Row) (domain.Department, error) {
	var d domain.Department
	err := r.Scan(&d.ID, &d.Name, &d.CreatedAt)
	return d, err
}

const userCols = `id, email, full_name, role, department_id, is_active, created_at`

func scanUser(r store.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := r.Scan(&u.ID, &u.Email, &u.FullName, &role, &u.DepartmentID, &u.IsActive, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.Role = actor.Role(role)
	return u, nil
}

// InsertDepartment stores a new department keyed by its canonical name
func (r *queries) InsertDepartment(ctx context.Context, d domain.Department, key string) (domain.Department, error) {
	const sql = `
		INSERT INTO departments (id, name, name_key)
		VALUES ($1, $2, $3)
		RETURNING ` + departmentCols
	out, err := store.One(ctx, r.q, scanDepartment, sql, d.ID, d.Name, key)
	return out, repokit.Err(err, "insert department")
}

// RenameDepartment updates name and key
func (r *queries) RenameDepartment(ctx context.Context, id uuid.UUID, name, key string) (domain.Department, error) {
	const sql = `
		UPDATE departments SET name = $2, name_key = $3
		WHERE id = $1
		RETURNING ` + departmentCols
	out, err := store.One(ctx, r.q, scanDepartment, sql, id, name, key)
	return out, repokit.Err(err, "rename department")
}

// DeleteDepartment removes the row
func (r *queries) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM departments WHERE id = $1`, id)
	return repokit.Err(err, "delete department")
}

// DepartmentByID reads one department
func (r *queries) DepartmentByID(ctx context.Context, id uuid.UUID) (domain.Department, error) {
	out, err := store.One(ctx, r.q, scanDepartment, `SELECT `+departmentCols+` FROM departments WHERE id = $1`, id)
	return out, repokit.Err(err, "read department")
}

// Departments lists all departments by name
func (r *queries) Departments(ctx context.Context) ([]domain.Department, error) {
	out, err := store.Many(ctx, r.q, scanDepartment, `SELECT `+departmentCols+` FROM departments ORDER BY name_key, id`)
	return out, repokit.Err(err, "list departments")
}

// DepartmentInUse checks for referencing rooms and users
func (r *queries) DepartmentInUse(ctx context.Context, id uuid.UUID) (bool, error) {
	const sql = `
		SELECT EXISTS (SELECT 1 FROM rooms WHERE department_id = $1)
		    OR EXISTS (SELECT 1 FROM users WHERE department_id = $1)
	`
	used, err := store.Scalar[bool](ctx, r.q, sql, id)
	return used, repokit.Err(err, "department usage")
}

// InsertUser stores a new account keyed by its canonical email
func (r *queries) InsertUser(ctx context.Context, u domain.User, emailKey string) (domain.User, error) {
	const sql = `
		INSERT INTO users (id, email, email_key, full_name, role, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userCols
	out, err := store.One(ctx, r.q, scanUser, sql,
		u.ID, u.Email, emailKey, u.FullName, string(u.Role), u.DepartmentID, u.IsActive,
	)
	return out, repokit.Err(err, "insert user")
}

// UserByID reads one account
func (r *queries) UserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	out, err := store.One(ctx, r.q, scanUser, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	return out, repokit.Err(err, "read user")
}

// Users lists accounts ordered by name; nil filter fields match everything
func (r *queries) Users(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	const sql = `
		SELECT ` + userCols + ` FROM users
		WHERE ($1::uuid IS NULL OR department_id = $1)
		  AND ($2::text IS NULL OR role = $2)
		ORDER BY full_name, id
	`
	var role *string
	if f.Role != nil {
		s := string(*f.Role)
		role = &s
	}
	out, err := store.Many(ctx, r.q, scanUser, sql, f.DepartmentID, role)
	return out, repokit.Err(err, "list users")
}

// RoomDepartment returns the owning department of a room
func (r *queries) RoomDepartment(ctx context.Context, roomID uuid.UUID) (uuid.UUID, error) {
	out, err := store.One(ctx, r.q, func(row store.Row) (uuid.UUID, error) {
		var id uuid.UUID
		err := row.Scan(&id)
		return id, err
	}, `SELECT department_id FROM rooms WHERE id = $1`, roomID)
	return out, repokit.Err(err, "read room")
}

// UpsertStaff assigns the user to the room, replacing an earlier assignment
func (r *queries) UpsertStaff(ctx context.Context, userID, roomID uuid.UUID) (time.Time, error) {
	const sql = `
		INSERT INTO staff (user_id, room_id, assigned_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET room_id = EXCLUDED.room_id, assigned_at = EXCLUDED.assigned_at
		RETURNING assigned_at
	`
	at, err := store.Scalar[time.Time](ctx, r.q, sql, userID, roomID)
	return at, repokit.Err(err, "assign staff")
}

// DeleteStaff clears an assignment
func (r *queries) DeleteStaff(ctx context.Context, userID uuid.UUID) error {
	err := store.ExecOne(ctx, r.q, `DELETE FROM staff WHERE user_id = $1`, userID)
	return repokit.Err(err, "unassign staff")
}

// StaffByRoom lists assignments for a room with user details
func (r *queries) StaffByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.Staff, error) {
	const sql = `
		SELECT s.user_id, s.room_id, u.full_name, u.email, s.assigned_at
		FROM staff s
		JOIN users u ON u.id = s.user_id
		WHERE s.room_id = $1
		ORDER BY u.full_name, s.user_id
	`
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Staff, error) {
		var s domain.Staff
		err := row.Scan(&s.UserID, &s.RoomID, &s.FullName, &s.Email, &s.AssignedAt)
		return s, err
	}, sql, roomID)
	return out, repokit.Err(err, "list staff")
}
