package service

import (
	"context"

	"recordkeeper/internal/core/access/accesstest"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/services/api/storage/domain"

	"github.com/google/uuid"
)

type room struct {
	dept     uuid.UUID
	capacity int
	lockers  int
}

type memRepo struct {
	rooms   map[uuid.UUID]*room
	lockers map[uuid.UUID]domain.Locker
	folders map[uuid.UUID]domain.Folder
	owners  *accesstest.Owners
	writes  int
}

func newMemRepo(owners *accesstest.Owners) *memRepo {
	return &memRepo{
		rooms:   map[uuid.UUID]*room{},
		lockers: map[uuid.UUID]domain.Locker{},
		folders: map[uuid.UUID]domain.Folder{},
		owners:  owners,
	}
}

func (m *memRepo) seedRoom(dept uuid.UUID, capacity int) uuid.UUID {
	id := uuid.New()
	m.rooms[id] = &room{dept: dept, capacity: capacity}
	m.owners.Rooms[id] = dept
	return id
}

func (m *memRepo) seedLocker(roomID uuid.UUID, capacity, folders int) domain.Locker {
	l := domain.Locker{ID: uuid.New(), RoomID: roomID, Name: "L", Capacity: capacity, NumberOfFolders: folders}
	m.lockers[l.ID] = l
	m.rooms[roomID].lockers++
	m.owners.Lockers[l.ID] = m.rooms[roomID].dept
	return l
}

func (m *memRepo) seedFolder(lockerID uuid.UUID, capacity, docs int) domain.Folder {
	l := m.lockers[lockerID]
	f := domain.Folder{ID: uuid.New(), LockerID: lockerID, RoomID: l.RoomID, Name: "F", Capacity: capacity, NumberOfDocuments: docs}
	m.folders[f.ID] = f
	l.NumberOfFolders++
	m.lockers[lockerID] = l
	m.owners.Folders[f.ID] = m.rooms[l.RoomID].dept
	return f
}

func (m *memRepo) LockRoomCounters(_ context.Context, id uuid.UUID) (domain.Counters, error) {
	r, ok := m.rooms[id]
	if !ok {
		return domain.Counters{}, perr.ErrNotFound
	}
	return domain.Counters{Capacity: r.capacity, Count: r.lockers}, nil
}

func (m *memRepo) AdjustRoomLockers(_ context.Context, id uuid.UUID, delta int) error {
	m.writes++
	m.rooms[id].lockers += delta
	return nil
}

func (m *memRepo) InsertLocker(_ context.Context, l domain.Locker, _ string) (domain.Locker, error) {
	m.writes++
	m.lockers[l.ID] = l
	return l, nil
}

func (m *memRepo) LockLocker(ctx context.Context, id uuid.UUID) (domain.Locker, error) {
	return m.LockerByID(ctx, id)
}

func (m *memRepo) UpdateLocker(_ context.Context, l domain.Locker, _ string) (domain.Locker, error) {
	m.writes++
	m.lockers[l.ID] = l
	return l, nil
}

func (m *memRepo) DeleteLocker(_ context.Context, id uuid.UUID) error {
	m.writes++
	delete(m.lockers, id)
	return nil
}

func (m *memRepo) LockerByID(_ context.Context, id uuid.UUID) (domain.Locker, error) {
	l, ok := m.lockers[id]
	if !ok {
		return domain.Locker{}, perr.ErrNotFound
	}
	return l, nil
}

func (m *memRepo) Lockers(_ context.Context, roomID uuid.UUID) ([]domain.Locker, error) {
	var out []domain.Locker
	for _, l := range m.lockers {
		if l.RoomID == roomID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memRepo) RoomExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.rooms[id]
	return ok, nil
}

func (m *memRepo) AdjustLockerFolders(_ context.Context, id uuid.UUID, delta int) error {
	m.writes++
	l := m.lockers[id]
	l.NumberOfFolders += delta
	m.lockers[id] = l
	return nil
}

func (m *memRepo) InsertFolder(_ context.Context, f domain.Folder, _ string) (domain.Folder, error) {
	m.writes++
	m.folders[f.ID] = f
	return f, nil
}

func (m *memRepo) LockFolder(ctx context.Context, id uuid.UUID) (domain.Folder, error) {
	return m.FolderByID(ctx, id)
}

func (m *memRepo) UpdateFolder(_ context.Context, f domain.Folder, _ string) (domain.Folder, error) {
	m.writes++
	m.folders[f.ID] = f
	return f, nil
}

func (m *memRepo) DeleteFolder(_ context.Context, id uuid.UUID) error {
	m.writes++
	delete(m.folders, id)
	return nil
}

func (m *memRepo) FolderByID(_ context.Context, id uuid.UUID) (domain.Folder, error) {
	f, ok := m.folders[id]
	if !ok {
		return domain.Folder{}, perr.ErrNotFound
	}
	return f, nil
}

func (m *memRepo) Folders(_ context.Context, q domain.FolderFilter) ([]domain.Folder, error) {
	var out []domain.Folder
	for _, f := range m.folders {
		switch {
		case q.DepartmentID != nil && m.rooms[f.RoomID].dept != *q.DepartmentID:
		case q.RoomID != nil && f.RoomID != *q.RoomID:
		case q.LockerID != nil && f.LockerID != *q.LockerID:
		default:
			out = append(out, f)
		}
	}
	return out, nil
}
