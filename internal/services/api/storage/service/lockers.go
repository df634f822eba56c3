package service

import (
	"context"

	"recordkeeper/internal/core/normalize"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/storage/domain"

	"github.com/google/uuid"
)

// AddLocker places an empty locker in a room that still has space
func (s *Svc) AddLocker(ctx context.Context, c domain.AddLocker) (domain.Locker, error) {
	name := normalize.Name(c.Name)
	var out domain.Locker
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		room, err := r.LockRoomCounters(ctx, c.RoomID)
		if err != nil {
			return repokit.NotFound(err, "room", c.RoomID)
		}
		if room.Full() {
			return perr.Conflictf("room %s is full (%d of %d lockers)", c.RoomID, room.Count, room.Capacity)
		}
		l := domain.Locker{
			ID:          uuid.New(),
			RoomID:      c.RoomID,
			Name:        name,
			Description: normalize.Text(c.Description),
			Capacity:    c.Capacity,
		}
		if out, err = r.InsertLocker(ctx, l, normalize.Key(name)); err != nil {
			return repokit.Duplicate(err, "locker %q already exists in room %s", name, c.RoomID)
		}
		return r.AdjustRoomLockers(ctx, c.RoomID, 1)
	})
	return out, err
}

// UpdateLocker relabels a locker; capacity may not drop below its folders
func (s *Svc) UpdateLocker(ctx context.Context, c domain.UpdateLocker) (domain.Locker, error) {
	var out domain.Locker
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockLocker(ctx, c.LockerID)
		if err != nil {
			return repokit.NotFound(err, "locker", c.LockerID)
		}
		if c.Capacity < cur.NumberOfFolders {
			return perr.Conflictf("locker %s holds %d folders; capacity %d is too small", c.LockerID, cur.NumberOfFolders, c.Capacity)
		}
		name := normalize.Name(c.Name)
		cur.Name = name
		cur.Description = normalize.Text(c.Description)
		cur.Capacity = c.Capacity
		out, err = r.UpdateLocker(ctx, cur, normalize.Key(name))
		return repokit.Duplicate(err, "locker %q already exists in room %s", name, cur.RoomID)
	})
	return out, err
}

// RemoveLocker deletes an empty locker and frees its slot in the room
func (s *Svc) RemoveLocker(ctx context.Context, c domain.RemoveLocker) (struct{}, error) {
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockLocker(ctx, c.LockerID)
		if err != nil {
			return repokit.NotFound(err, "locker", c.LockerID)
		}
		if cur.NumberOfFolders > 0 {
			return perr.Conflictf("locker %s still holds %d folders", c.LockerID, cur.NumberOfFolders)
		}
		if err := r.DeleteLocker(ctx, c.LockerID); err != nil {
			return repokit.NotFound(err, "locker", c.LockerID)
		}
		return r.AdjustRoomLockers(ctx, cur.RoomID, -1)
	})
	return struct{}{}, err
}

// GetLockerByID reads one locker
func (s *Svc) GetLockerByID(ctx context.Context, q domain.GetLockerByID) (domain.Locker, error) {
	out, err := s.Repo.LockerByID(ctx, q.LockerID)
	return out, repokit.NotFound(err, "locker", q.LockerID)
}

// GetAllLockers lists the lockers of one room
func (s *Svc) GetAllLockers(ctx context.Context, q domain.GetAllLockers) ([]domain.Locker, error) {
	ok, err := s.Repo.RoomExists(ctx, q.RoomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.NotFoundf("room %s not found", q.RoomID)
	}
	out, err := s.Repo.Lockers(ctx, q.RoomID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Locker{}
	}
	return out, nil
}
