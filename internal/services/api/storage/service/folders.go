package service

import (
	"context"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/normalize"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/storage/domain"

	"github.com/google/uuid"
)

// AddFolder places an empty folder in a locker that still has space
func (s *Svc) AddFolder(ctx context.Context, c domain.AddFolder) (domain.Folder, error) {
	name := normalize.Name(c.Name)
	var out domain.Folder
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		locker, err := r.LockLocker(ctx, c.LockerID)
		if err != nil {
			return repokit.NotFound(err, "locker", c.LockerID)
		}
		if locker.NumberOfFolders >= locker.Capacity {
			return perr.Conflictf("locker %s is full (%d of %d folders)", c.LockerID, locker.NumberOfFolders, locker.Capacity)
		}
		f := domain.Folder{
			ID:          uuid.New(),
			LockerID:    c.LockerID,
			RoomID:      locker.RoomID,
			Name:        name,
			Description: normalize.Text(c.Description),
			Capacity:    c.Capacity,
		}
		if out, err = r.InsertFolder(ctx, f, normalize.Key(name)); err != nil {
			return repokit.Duplicate(err, "folder %q already exists in locker %s", name, c.LockerID)
		}
		return r.AdjustLockerFolders(ctx, c.LockerID, 1)
	})
	return out, err
}

// UpdateFolder relabels a folder; capacity may not drop below its documents
func (s *Svc) UpdateFolder(ctx context.Context, c domain.UpdateFolder) (domain.Folder, error) {
	var out domain.Folder
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockFolder(ctx, c.FolderID)
		if err != nil {
			return repokit.NotFound(err, "folder", c.FolderID)
		}
		if c.Capacity < cur.NumberOfDocuments {
			return perr.Conflictf("folder %s holds %d documents; capacity %d is too small", c.FolderID, cur.NumberOfDocuments, c.Capacity)
		}
		name := normalize.Name(c.Name)
		cur.Name = name
		cur.Description = normalize.Text(c.Description)
		cur.Capacity = c.Capacity
		out, err = r.UpdateFolder(ctx, cur, normalize.Key(name))
		return repokit.Duplicate(err, "folder %q already exists in locker %s", name, cur.LockerID)
	})
	return out, err
}

// RemoveFolder deletes an empty folder and frees its slot in the locker
func (s *Svc) RemoveFolder(ctx context.Context, c domain.RemoveFolder) (struct{}, error) {
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockFolder(ctx, c.FolderID)
		if err != nil {
			return repokit.NotFound(err, "folder", c.FolderID)
		}
		if cur.NumberOfDocuments > 0 {
			return perr.Conflictf("folder %s still holds %d documents", c.FolderID, cur.NumberOfDocuments)
		}
		if err := r.DeleteFolder(ctx, c.FolderID); err != nil {
			return repokit.NotFound(err, "folder", c.FolderID)
		}
		return r.AdjustLockerFolders(ctx, cur.LockerID, -1)
	})
	return struct{}{}, err
}

// GetFolderByID reads one folder
func (s *Svc) GetFolderByID(ctx context.Context, q domain.GetFolderByID) (domain.Folder, error) {
	out, err := s.Repo.FolderByID(ctx, q.FolderID)
	return out, repokit.NotFound(err, "folder", q.FolderID)
}

// GetAllFolders lists folders under the given room or locker
// Without either, non-admin callers see their own department only
func (s *Svc) GetAllFolders(ctx context.Context, q domain.GetAllFolders) ([]domain.Folder, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return nil, err
	}
	f := domain.FolderFilter{RoomID: q.RoomID, LockerID: q.LockerID}
	if !a.IsAdmin() {
		own := a.DepartmentID
		f.DepartmentID = &own
	}
	out, err := s.Repo.Folders(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Folder{}
	}
	return out, nil
}
