// Package service contains document request handlers and their rules
package service

import (
	"context"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/core/normalize"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/documents/domain"
	"recordkeeper/internal/services/api/documents/repo"

	"github.com/google/uuid"
)

// Svc handles document requests
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	attempts int
}

// Options control service behavior
type Options struct {
	TxAttempts int
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("documents.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("documents.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		attempts: max(opt.TxAttempts, 1),
	}
}

// Register implements mediator.Registrar
func (s *Svc) Register(r *mediator.Registry) {
	mediator.ValidateWith[domain.ImportDocument](r, importDocumentRules)
	mediator.Authorize(r, authorizeImportDocument)
	mediator.Handle(r, s.ImportDocument)

	mediator.ValidateWith[domain.UpdateDocument](r, updateDocumentRules)
	mediator.Authorize(r, authorizeUpdateDocument)
	mediator.Handle(r, s.UpdateDocument)

	mediator.ValidateWith[domain.DeleteDocument](r, deleteDocumentRules)
	mediator.Authorize(r, authorizeDeleteDocument)
	mediator.Handle(r, s.DeleteDocument)

	mediator.ValidateWith[domain.GetDocumentByID](r, getDocumentRules)
	mediator.Authorize(r, authorizeGetDocument)
	mediator.Handle(r, s.GetDocumentByID)

	mediator.ValidateWith[domain.GetAllDocuments](r, getAllDocumentsRules)
	mediator.Authorize(r, authorizeGetAllDocuments)
	mediator.Handle(r, s.GetAllDocuments)
}

// ImportDocument files a document into a folder with space left
func (s *Svc) ImportDocument(ctx context.Context, c domain.ImportDocument) (domain.Document, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	title := normalize.Name(c.Title)
	var out domain.Document
	err = store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		space, err := r.LockFolderSpace(ctx, c.FolderID)
		if err != nil {
			return repokit.NotFound(err, "folder", c.FolderID)
		}
		if space.Documents >= space.Capacity {
			return perr.Conflictf("folder %s is full (%d of %d documents)", c.FolderID, space.Documents, space.Capacity)
		}
		d := domain.Document{
			ID:           uuid.New(),
			FolderID:     c.FolderID,
			Title:        title,
			Description:  normalize.Text(c.Description),
			DocumentType: normalize.Name(c.DocumentType),
			ImporterID:   a.UserID,
		}
		if out, err = r.InsertDocument(ctx, d, normalize.Key(title)); err != nil {
			return repokit.Duplicate(err, "document %q already exists in folder %s", title, c.FolderID)
		}
		return r.AdjustFolderDocuments(ctx, c.FolderID, 1)
	})
	return out, err
}

// UpdateDocument changes title, description and type
func (s *Svc) UpdateDocument(ctx context.Context, c domain.UpdateDocument) (domain.Document, error) {
	var out domain.Document
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockDocument(ctx, c.DocumentID)
		if err != nil {
			return repokit.NotFound(err, "document", c.DocumentID)
		}
		title := normalize.Name(c.Title)
		cur.Title = title
		cur.Description = normalize.Text(c.Description)
		cur.DocumentType = normalize.Name(c.DocumentType)
		out, err = r.UpdateDocument(ctx, cur, normalize.Key(title))
		return repokit.Duplicate(err, "document %q already exists in folder %s", title, cur.FolderID)
	})
	return out, err
}

// DeleteDocument removes a document and frees its slot in the folder
func (s *Svc) DeleteDocument(ctx context.Context, c domain.DeleteDocument) (struct{}, error) {
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockDocument(ctx, c.DocumentID)
		if err != nil {
			return repokit.NotFound(err, "document", c.DocumentID)
		}
		if err := r.DeleteDocument(ctx, c.DocumentID); err != nil {
			return repokit.NotFound(err, "document", c.DocumentID)
		}
		return r.AdjustFolderDocuments(ctx, cur.FolderID, -1)
	})
	return struct{}{}, err
}

// GetDocumentByID reads one document
func (s *Svc) GetDocumentByID(ctx context.Context, q domain.GetDocumentByID) (domain.Document, error) {
	out, err := s.Repo.DocumentByID(ctx, q.DocumentID)
	return out, repokit.NotFound(err, "document", q.DocumentID)
}

// GetAllDocuments lists documents under the given containers
// Non-admin callers only ever see their own department
func (s *Svc) GetAllDocuments(ctx context.Context, q domain.GetAllDocuments) ([]domain.Document, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return nil, err
	}
	f := domain.DocumentFilter{RoomID: q.RoomID, LockerID: q.LockerID, FolderID: q.FolderID}
	if q.Search != nil {
		f.Search = normalize.Key(*q.Search)
	}
	if !a.IsAdmin() {
		own := a.DepartmentID
		f.DepartmentID = &own
	}
	out, err := s.Repo.Documents(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Document{}
	}
	return out, nil
}
