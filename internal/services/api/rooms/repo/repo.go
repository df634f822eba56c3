// Package repo provides the room repository implementation
package repo

import (
	"context"

	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/rooms/domain"

	"github.com/google/uuid"
)

// Repo is the room persistence surface used by the service layer
// Missing rows are reported as perr.ErrNotFound
type Repo interface {
	DepartmentExists(ctx context.Context, id uuid.UUID) (bool, error)
	InsertRoom(ctx context.Context, r domain.Room, key string) (domain.Room, error)
	// LockRoom reads a room and holds its row lock until the tx ends
	LockRoom(ctx context.Context, id uuid.UUID) (domain.Room, error)
	UpdateRoom(ctx context.Context, r domain.Room, key string) (domain.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
	HasStaff(ctx context.Context, id uuid.UUID) (bool, error)
	RoomByID(ctx context.Context, id uuid.UUID) (domain.Room, error)
	Rooms(ctx context.Context, departmentID *uuid.UUID) ([]domain.Room, error)
}

type (
	// PG is a Postgres implementation of the room repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const roomCols = `id, department_id, name, description, capacity, number_of_lockers, created_at`

func scanRoom(r store.Row) (domain.Room, error) {
	var x domain.Room
	err := r.Scan(&x.ID, &x.DepartmentID, &x.Name, &x.Description, &x.Capacity, &x.NumberOfLockers, &x.CreatedAt)
	return x, err
}

// DepartmentExists reports whether the department row is present
func (r *queries) DepartmentExists(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, `SELECT EXISTS (SELECT 1 FROM departments WHERE id = $1)`, id)
	return ok, repokit.Err(err, "read department")
}

// InsertRoom stores a new empty room
func (r *queries) InsertRoom(ctx context.Context, x domain.Room, key string) (domain.Room, error) {
	const sql = `
		INSERT INTO rooms (id, department_id, name, name_key, description, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + roomCols
	out, err := store.One(ctx, r.q, scanRoom, sql, x.ID, x.DepartmentID, x.Name, key, x.Description, x.Capacity)
	return out, repokit.Err(err, "insert room")
}

// LockRoom selects the room FOR UPDATE
func (r *queries) LockRoom(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	out, err := store.One(ctx, r.q, scanRoom, `SELECT `+roomCols+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
	return out, repokit.Err(err, "lock room")
}

// UpdateRoom writes label and capacity
func (r *queries) UpdateRoom(ctx context.Context, x domain.Room, key string) (domain.Room, error) {
	const sql = `
		UPDATE rooms SET name = $2, name_key = $3, description = $4, capacity = $5
		WHERE id = $1
		RETURNING ` + roomCols
	out, err := store.One(ctx, r.q, scanRoom, sql, x.ID, x.Name, key, x.Description, x.Capacity)
	return out, repokit.Err(err, "update room")
}

// DeleteRoom removes the row
func (r *queries) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	return repokit.Err(store.ExecOne(ctx, r.q, `DELETE FROM rooms WHERE id = $1`, id), "delete room")
}

// HasStaff reports whether staff are assigned to the room
func (r *queries) HasStaff(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, `SELECT EXISTS (SELECT 1 FROM staff WHERE room_id = $1)`, id)
	return ok, repokit.Err(err, "room staff")
}

// RoomByID reads one room
func (r *queries) RoomByID(ctx context.Context, id uuid.UUID) (domain.Room, error) {
	out, err := store.One(ctx, r.q, scanRoom, `SELECT `+roomCols+` FROM rooms WHERE id = $1`, id)
	return out, repokit.Err(err, "read room")
}

// Rooms lists rooms by name; a nil department lists all
func (r *queries) Rooms(ctx context.Context, departmentID *uuid.UUID) ([]domain.Room, error) {
	const sql = `
		SELECT ` + roomCols + ` FROM rooms
		WHERE ($1::uuid IS NULL OR department_id = $1)
		ORDER BY name_key, id
	`
	out, err := store.Many(ctx, r.q, scanRoom, sql, departmentID)
	return out, repokit.Err(err, "list rooms")
}
