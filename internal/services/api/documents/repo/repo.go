// Package repo provides the document repository implementation
package repo

import (
	"context"

	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/documents/domain"

	"github.com/google/uuid"
)

// Repo is the document persistence surface used by the service layer
type Repo interface {
	LockFolderSpace(ctx context.Context, folderID uuid.UUID) (domain.FolderSpace, error)
	AdjustFolderDocuments(ctx context.Context, folderID uuid.UUID, delta int) error

	InsertDocument(ctx context.Context, d domain.Document, key string) (domain.Document, error)
	LockDocument(ctx context.Context, id uuid.UUID) (domain.Document, error)
	UpdateDocument(ctx context.Context, d domain.Document, key string) (domain.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	DocumentByID(ctx context.Context, id uuid.UUID) (domain.Document, error)
	Documents(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, error)
}

type (
	// PG is a Postgres implementation of the document repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// LockFolderSpace locks the folder row and returns its document counters
func (r *queries) LockFolderSpace(ctx context.Context, folderID uuid.UUID) (domain.FolderSpace, error) {
	out, err := store.One(ctx, r.q, func(row store.Row) (domain.FolderSpace, error) {
		var s domain.FolderSpace
		err := row.Scan(&s.Capacity, &s.Documents)
		return s, err
	}, `SELECT capacity, number_of_documents FROM folders WHERE id = $1 FOR UPDATE`, folderID)
	return out, repokit.Err(err, "lock folder")
}

// AdjustFolderDocuments moves the folder's document counter by delta
func (r *queries) AdjustFolderDocuments(ctx context.Context, folderID uuid.UUID, delta int) error {
	err := store.ExecOne(ctx, r.q,
		`UPDATE folders SET number_of_documents = number_of_documents + $2 WHERE id = $1`, folderID, delta)
	return repokit.Err(err, "folder document count")
}

const documentSelect = `
	SELECT d.id, d.folder_id, f.locker_id, l.room_id, d.title, d.description, d.document_type,
	       d.importer_id, d.created_at, d.updated_at
	FROM documents d
	JOIN folders f ON f.id = d.folder_id
	JOIN lockers l ON l.id = f.locker_id
`

func scanDocument(r store.Row) (domain.Document, error) {
	var d domain.Document
	err := r.Scan(&d.ID, &d.FolderID, &d.LockerID, &d.RoomID, &d.Title, &d.Description, &d.DocumentType,
		&d.ImporterID, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// InsertDocument stores a new document and reads it back with its container chain
func (r *queries) InsertDocument(ctx context.Context, d domain.Document, key string) (domain.Document, error) {
	const sql = `
		INSERT INTO documents (id, folder_id, title, title_key, description, document_type, importer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.Exec(ctx, sql, d.ID, d.FolderID, d.Title, key, d.Description, d.DocumentType, d.ImporterID)
	if err != nil {
		return domain.Document{}, repokit.Err(err, "insert document")
	}
	return r.DocumentByID(ctx, d.ID)
}

// LockDocument selects the document FOR UPDATE
func (r *queries) LockDocument(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	out, err := store.One(ctx, r.q, scanDocument, documentSelect+` WHERE d.id = $1 FOR UPDATE OF d`, id)
	return out, repokit.Err(err, "lock document")
}

// UpdateDocument writes metadata and bumps updated_at
func (r *queries) UpdateDocument(ctx context.Context, d domain.Document, key string) (domain.Document, error) {
	const sql = `
		UPDATE documents
		SET title = $2, title_key = $3, description = $4, document_type = $5, updated_at = now()
		WHERE id = $1
	`
	if err := store.ExecOne(ctx, r.q, sql, d.ID, d.Title, key, d.Description, d.DocumentType); err != nil {
		return domain.Document{}, repokit.Err(err, "update document")
	}
	return r.DocumentByID(ctx, d.ID)
}

// DeleteDocument removes the row
func (r *queries) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return repokit.Err(store.ExecOne(ctx, r.q, `DELETE FROM documents WHERE id = $1`, id), "delete document")
}

// DocumentByID reads one document
func (r *queries) DocumentByID(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	out, err := store.One(ctx, r.q, scanDocument, documentSelect+` WHERE d.id = $1`, id)
	return out, repokit.Err(err, "read document")
}

// Documents lists documents by title within the filter, newest first on ties
func (r *queries) Documents(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, error) {
	const where = `
		JOIN rooms r ON r.id = l.room_id
		WHERE ($1::uuid IS NULL OR r.department_id = $1)
		  AND ($2::uuid IS NULL OR l.room_id = $2)
		  AND ($3::uuid IS NULL OR f.locker_id = $3)
		  AND ($4::uuid IS NULL OR d.folder_id = $4)
		  AND ($5::text = '' OR strpos(d.title_key, $5) > 0)
		ORDER BY d.title_key, d.created_at DESC, d.id
	`
	out, err := store.Many(ctx, r.q, scanDocument, documentSelect+where,
		f.DepartmentID, f.RoomID, f.LockerID, f.FolderID, f.Search)
	return out, repokit.Err(err, "list documents")
}
