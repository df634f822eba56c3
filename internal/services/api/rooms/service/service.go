// Package service contains room request handlers and their rules
package service

import (
	"context"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/core/normalize"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/rooms/domain"
	"recordkeeper/internal/services/api/rooms/repo"

	"github.com/google/uuid"
)

// Svc handles room requests
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
		panic("rooms.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("rooms.Service requires a non nil Repo binder")
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
	mediator.ValidateWith[domain.AddRoom](r, addRoomRules)
	mediator.Authorize(r, authorizeAddRoom)
	mediator.Handle(r, s.AddRoom)

	mediator.ValidateWith[domain.UpdateRoom](r, updateRoomRules)
	mediator.Authorize(r, authorizeUpdateRoom)
	mediator.Handle(r, s.UpdateRoom)

	mediator.ValidateWith[domain.RemoveRoom](r, removeRoomRules)
	mediator.Authorize(r, authorizeRemoveRoom)
	mediator.Handle(r, s.RemoveRoom)

	mediator.ValidateWith[domain.GetRoomByID](r, getRoomRules)
	mediator.Authorize(r, authorizeGetRoom)
	mediator.Handle(r, s.GetRoomByID)

	mediator.ValidateWith[domain.GetAllRooms](r, getAllRoomsRules)
	mediator.Authorize(r, authorizeGetAllRooms)
	mediator.Handle(r, s.GetAllRooms)
}

// AddRoom creates an empty room in an existing department
func (s *Svc) AddRoom(ctx context.Context, c domain.AddRoom) (domain.Room, error) {
	ok, err := s.Repo.DepartmentExists(ctx, c.DepartmentID)
	if err != nil {
		return domain.Room{}, err
	}
	if !ok {
		return domain.Room{}, perr.NotFoundf("department %s not found", c.DepartmentID)
	}
	name := normalize.Name(c.Name)
	room := domain.Room{
		ID:           uuid.New(),
		DepartmentID: c.DepartmentID,
		Name:         name,
		Description:  normalize.Text(c.Description),
		Capacity:     c.Capacity,
	}
	out, err := s.Repo.InsertRoom(ctx, room, normalize.Key(name))
	if err != nil {
		return domain.Room{}, repokit.Duplicate(err, "room %q already exists in department %s", name, c.DepartmentID)
	}
	return out, nil
}

// UpdateRoom relabels a room; capacity may not drop below the lockers it holds
func (s *Svc) UpdateRoom(ctx context.Context, c domain.UpdateRoom) (domain.Room, error) {
	var out domain.Room
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockRoom(ctx, c.RoomID)
		if err != nil {
			return repokit.NotFound(err, "room", c.RoomID)
		}
		if c.Capacity < cur.NumberOfLockers {
			return perr.Conflictf("room %s holds %d lockers; capacity %d is too small", c.RoomID, cur.NumberOfLockers, c.Capacity)
		}
		name := normalize.Name(c.Name)
		cur.Name = name
		cur.Description = normalize.Text(c.Description)
		cur.Capacity = c.Capacity
		out, err = r.UpdateRoom(ctx, cur, normalize.Key(name))
		return repokit.Duplicate(err, "room %q already exists in department %s", name, cur.DepartmentID)
	})
	return out, err
}

// RemoveRoom deletes a room without lockers or staff
func (s *Svc) RemoveRoom(ctx context.Context, c domain.RemoveRoom) (struct{}, error) {
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		cur, err := r.LockRoom(ctx, c.RoomID)
		if err != nil {
			return repokit.NotFound(err, "room", c.RoomID)
		}
		if cur.NumberOfLockers > 0 {
			return perr.Conflictf("room %s still holds %d lockers", c.RoomID, cur.NumberOfLockers)
		}
		staffed, err := r.HasStaff(ctx, c.RoomID)
		if err != nil {
			return err
		}
		if staffed {
			return perr.Conflictf("room %s still has staff assigned", c.RoomID)
		}
		return repokit.NotFound(r.DeleteRoom(ctx, c.RoomID), "room", c.RoomID)
	})
	return struct{}{}, err
}

// GetRoomByID reads one room
func (s *Svc) GetRoomByID(ctx context.Context, q domain.GetRoomByID) (domain.Room, error) {
	out, err := s.Repo.RoomByID(ctx, q.RoomID)
	return out, repokit.NotFound(err, "room", q.RoomID)
}

// GetAllRooms lists rooms; non-admin callers only see their own department
func (s *Svc) GetAllRooms(ctx context.Context, q domain.GetAllRooms) ([]domain.Room, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return nil, err
	}
	dept := q.DepartmentID
	if !a.IsAdmin() {
		own := a.DepartmentID
		dept = &own
	}
	out, err := s.Repo.Rooms(ctx, dept)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Room{}
	}
	return out, nil
}
