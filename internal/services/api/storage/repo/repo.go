// Package repo provides the locker and folder repository implementation
package repo

import (
	"context"

	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/storage/domain"

	"github.com/google/uuid"
)

// Repo is the storage persistence surface used by the service layer
// Missing rows are reported as perr.ErrNotFound. Lock* reads hold the row
// lock until the surrounding tx ends
type Repo interface {
	LockRoomCounters(ctx context.Context, roomID uuid.UUID) (domain.Counters, error)
	AdjustRoomLockers(ctx context.Context, roomID uuid.UUID, delta int) error

	InsertLocker(ctx context.Context, l domain.Locker, key string) (domain.Locker, error)
	LockLocker(ctx context.Context, id uuid.UUID) (domain.Locker, error)
	UpdateLocker(ctx context.Context, l domain.Locker, key string) (domain.Locker, error)
	DeleteLocker(ctx context.Context, id uuid.UUID) error
	LockerByID(ctx context.Context, id uuid.UUID) (domain.Locker, error)
	Lockers(ctx context.Context, roomID uuid.UUID) ([]domain.Locker, error)
	RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error)
	AdjustLockerFolders(ctx context.Context, lockerID uuid.UUID, delta int) error

	InsertFolder(ctx context.Context, f domain.Folder, key string) (domain.Folder, error)
	LockFolder(ctx context.Context, id uuid.UUID) (domain.Folder, error)
	UpdateFolder(ctx context.Context, f domain.Folder, key string) (domain.Folder, error)
	DeleteFolder(ctx context.Context, id uuid.UUID) error
	FolderByID(ctx context.Context, id uuid.UUID) (domain.Folder, error)
	Folders(ctx context.Context, f domain.FolderFilter) ([]domain.Folder, error)
}

type (
	// PG is a Postgres implementation of the storage repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func scanCounters(r store.Row) (domain.Counters, error) {
	var c domain.Counters
	err := r.Scan(&c.Capacity, &c.Count)
	return c, err
}

// LockRoomCounters locks the room row and returns its locker counters
func (r *queries) LockRoomCounters(ctx context.Context, roomID uuid.UUID) (domain.Counters, error) {
	out, err := store.One(ctx, r.q, scanCounters,
		`SELECT capacity, number_of_lockers FROM rooms WHERE id = $1 FOR UPDATE`, roomID)
	return out, repokit.Err(err, "lock room")
}

// AdjustRoomLockers moves the room's locker counter by delta
func (r *queries) AdjustRoomLockers(ctx context.Context, roomID uuid.UUID, delta int) error {
	err := store.ExecOne(ctx, r.q,
		`UPDATE rooms SET number_of_lockers = number_of_lockers + $2 WHERE id = $1`, roomID, delta)
	return repokit.Err(err, "room locker count")
}

const lockerCols = `id, room_id, name, description, capacity, number_of_folders, created_at`

func scanLocker(r store.Row) (domain.Locker, error) {
	var l domain.Locker
	err := r.Scan(&l.ID, &l.RoomID, &l.Name, &l.Description, &l.Capacity, &l.NumberOfFolders, &l.CreatedAt)
	return l, err
}

// InsertLocker stores a new empty locker
func (r *queries) InsertLocker(ctx context.Context, l domain.Locker, key string) (domain.Locker, error) {
	const sql = `
		INSERT INTO lockers (id, room_id, name, name_key, description, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + lockerCols
	out, err := store.One(ctx, r.q, scanLocker, sql, l.ID, l.RoomID, l.Name, key, l.Description, l.Capacity)
	return out, repokit.Err(err, "insert locker")
}

// LockLocker selects the locker FOR UPDATE
func (r *queries) LockLocker(ctx context.Context, id uuid.UUID) (domain.Locker, error) {
	out, err := store.One(ctx, r.q, scanLocker, `SELECT `+lockerCols+` FROM lockers WHERE id = $1 FOR UPDATE`, id)
	return out, repokit.Err(err, "lock locker")
}

// UpdateLocker writes label and capacity
func (r *queries) UpdateLocker(ctx context.Context, l domain.Locker, key string) (domain.Locker, error) {
	const sql = `
		UPDATE lockers SET name = $2, name_key = $3, description = $4, capacity = $5
		WHERE id = $1
		RETURNING ` + lockerCols
	out, err := store.One(ctx, r.q, scanLocker, sql, l.ID, l.Name, key, l.Description, l.Capacity)
	return out, repokit.Err(err, "update locker")
}

// DeleteLocker removes the row
func (r *queries) DeleteLocker(ctx context.Context, id uuid.UUID) error {
	return repokit.Err(store.ExecOne(ctx, r.q, `DELETE FROM lockers WHERE id = $1`, id), "delete locker")
}

// LockerByID reads one locker
func (r *queries) LockerByID(ctx context.Context, id uuid.UUID) (domain.Locker, error) {
	out, err := store.One(ctx, r.q, scanLocker, `SELECT `+lockerCols+` FROM lockers WHERE id = $1`, id)
	return out, repokit.Err(err, "read locker")
}

// Lockers lists the lockers of a room by name
func (r *queries) Lockers(ctx context.Context, roomID uuid.UUID) ([]domain.Locker, error) {
	out, err := store.Many(ctx, r.q, scanLocker,
		`SELECT `+lockerCols+` FROM lockers WHERE room_id = $1 ORDER BY name_key, id`, roomID)
	return out, repokit.Err(err, "list lockers")
}

// RoomExists reports whether the room row is present
func (r *queries) RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error) {
	ok, err := store.Scalar[bool](ctx, r.q, `SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)`, roomID)
	return ok, repokit.Err(err, "read room")
}

// AdjustLockerFolders moves the locker's folder counter by delta
func (r *queries) AdjustLockerFolders(ctx context.Context, lockerID uuid.UUID, delta int) error {
	err := store.ExecOne(ctx, r.q,
		`UPDATE lockers SET number_of_folders = number_of_folders + $2 WHERE id = $1`, lockerID, delta)
	return repokit.Err(err, "locker folder count")
}

// folders carry their room through the locker join
const folderSelect = `
	SELECT f.id, f.locker_id, l.room_id, f.name, f.description, f.capacity, f.number_of_documents, f.created_at
	FROM folders f
	JOIN lockers l ON l.id = f.locker_id
`

func scanFolder(r store.Row) (domain.Folder, error) {
	var f domain.Folder
	err := r.Scan(&f.ID, &f.LockerID, &f.RoomID, &f.Name, &f.Description, &f.Capacity, &f.NumberOfDocuments, &f.CreatedAt)
	return f, err
}

// InsertFolder stores a new empty folder
func (r *queries) InsertFolder(ctx context.Context, f domain.Folder, key string) (domain.Folder, error) {
	const sql = `
		INSERT INTO folders (id, locker_id, name, name_key, description, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.q.Exec(ctx, sql, f.ID, f.LockerID, f.Name, key, f.Description, f.Capacity); err != nil {
		return domain.Folder{}, repokit.Err(err, "insert folder")
	}
	return r.FolderByID(ctx, f.ID)
}

// LockFolder selects the folder FOR UPDATE
func (r *queries) LockFolder(ctx context.Context, id uuid.UUID) (domain.Folder, error) {
	out, err := store.One(ctx, r.q, scanFolder, folderSelect+` WHERE f.id = $1 FOR UPDATE OF f`, id)
	return out, repokit.Err(err, "lock folder")
}

// UpdateFolder writes label and capacity
func (r *queries) UpdateFolder(ctx context.Context, f domain.Folder, key string) (domain.Folder, error) {
	const sql = `UPDATE folders SET name = $2, name_key = $3, description = $4, capacity = $5 WHERE id = $1`
	if err := store.ExecOne(ctx, r.q, sql, f.ID, f.Name, key, f.Description, f.Capacity); err != nil {
		return domain.Folder{}, repokit.Err(err, "update folder")
	}
	return r.FolderByID(ctx, f.ID)
}

// DeleteFolder removes the row
func (r *queries) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	return repokit.Err(store.ExecOne(ctx, r.q, `DELETE FROM folders WHERE id = $1`, id), "delete folder")
}

// FolderByID reads one folder
func (r *queries) FolderByID(ctx context.Context, id uuid.UUID) (domain.Folder, error) {
	out, err := store.One(ctx, r.q, scanFolder, folderSelect+` WHERE f.id = $1`, id)
	return out, repokit.Err(err, "read folder")
}

// Folders lists folders by name within the filter
func (r *queries) Folders(ctx context.Context, f domain.FolderFilter) ([]domain.Folder, error) {
	const where = `
		JOIN rooms r ON r.id = l.room_id
		WHERE ($1::uuid IS NULL OR r.department_id = $1)
		  AND ($2::uuid IS NULL OR l.room_id = $2)
		  AND ($3::uuid IS NULL OR f.locker_id = $3)
		ORDER BY f.name_key, f.id
	`
	out, err := store.Many(ctx, r.q, scanFolder, folderSelect+where, f.DepartmentID, f.RoomID, f.LockerID)
	return out, repokit.Err(err, "list folders")
}
