// Package repo resolves the owning department of records containers
package repo

import (
	"context"

	"recordkeeper/internal/core/access"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"

	"github.com/google/uuid"
)

// PG reads ownership from Postgres; it never writes
type PG struct{ q repokit.Queryer }

var _ access.OwnershipReader = (*PG)(nil)

// NewPG binds the reader to q
func NewPG(q repokit.Queryer) *PG { return &PG{q: q} }

func (r *PG) department(ctx context.Context, kind, sql string, id uuid.UUID) (uuid.UUID, error) {
	out, err := store.One(ctx, r.q, func(row store.Row) (uuid.UUID, error) {
		var dept uuid.UUID
		err := row.Scan(&dept)
		return dept, err
	}, sql, id)
	return out, repokit.Err(err, "read "+kind+" owner")
}

// RoomDepartment implements access.OwnershipReader
func (r *PG) RoomDepartment(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return r.department(ctx, "room", `SELECT department_id FROM rooms WHERE id = $1`, id)
}

// LockerDepartment implements access.OwnershipReader
func (r *PG) LockerDepartment(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const sql = `
		SELECT r.department_id
		FROM lockers l
		JOIN rooms r ON r.id = l.room_id
		WHERE l.id = $1
	`
	return r.department(ctx, "locker", sql, id)
}

// FolderDepartment implements access.OwnershipReader
func (r *PG) FolderDepartment(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const sql = `
		SELECT r.department_id
		FROM folders f
		JOIN lockers l ON l.id = f.locker_id
		JOIN rooms r ON r.id = l.room_id
		WHERE f.id = $1
	`
	return r.department(ctx, "folder", sql, id)
}

// DocumentDepartment implements access.OwnershipReader
func (r *PG) DocumentDepartment(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const sql = `
		SELECT r.department_id
		FROM documents d
		JOIN folders f ON f.id = d.folder_id
		JOIN lockers l ON l.id = f.locker_id
		JOIN rooms r ON r.id = l.room_id
		WHERE d.id = $1
	`
	return r.department(ctx, "document", sql, id)
}

// StaffRoom implements access.OwnershipReader
func (r *PG) StaffRoom(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	room, err := r.department(ctx, "staff", `SELECT room_id FROM staff WHERE user_id = $1`, userID)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return uuid.Nil, false, nil
	case err != nil:
		return uuid.Nil, false, err
	}
	return room, true, nil
}
