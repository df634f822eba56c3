package service

import (
	"context"
	"sort"
	"time"

	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/services/api/organization/domain"
	"recordkeeper/internal/services/api/organization/repo"

	"github.com/google/uuid"
)

type memRepo struct {
	depts  map[uuid.UUID]domain.Department
	keys   map[string]uuid.UUID
	users  map[uuid.UUID]domain.User
	rooms  map[uuid.UUID]uuid.UUID
	staff  map[uuid.UUID]uuid.UUID
	writes int
}

func newMem() *memRepo {
	return &memRepo{
		depts: map[uuid.UUID]domain.Department{},
		keys:  map[string]uuid.UUID{},
		users: map[uuid.UUID]domain.User{},
		rooms: map[uuid.UUID]uuid.UUID{},
		staff: map[uuid.UUID]uuid.UUID{},
	}
}

func (m *memRepo) binder() repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

func (m *memRepo) InsertDepartment(_ context.Context, d domain.Department, key string) (domain.Department, error) {
	m.writes++
	if _, dup := m.keys[key]; dup {
		return domain.Department{}, perr.New(perr.ErrorCodeDuplicateKey, "departments_name_key_key")
	}
	d.CreatedAt = time.Now()
	m.depts[d.ID] = d
	m.keys[key] = d.ID
	return d, nil
}

func (m *memRepo) RenameDepartment(_ context.Context, id uuid.UUID, name, _ string) (domain.Department, error) {
	m.writes++
	d, ok := m.depts[id]
	if !ok {
		return domain.Department{}, perr.ErrNotFound
	}
	d.Name = name
	m.depts[id] = d
	return d, nil
}

func (m *memRepo) DeleteDepartment(_ context.Context, id uuid.UUID) error {
	m.writes++
	if _, ok := m.depts[id]; !ok {
		return perr.ErrNotFound
	}
	delete(m.depts, id)
	return nil
}

func (m *memRepo) DepartmentByID(_ context.Context, id uuid.UUID) (domain.Department, error) {
	d, ok := m.depts[id]
	if !ok {
		return domain.Department{}, perr.ErrNotFound
	}
	return d, nil
}

func (m *memRepo) Departments(context.Context) ([]domain.Department, error) {
	var out []domain.Department
	for _, d := range m.depts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) DepartmentInUse(_ context.Context, id uuid.UUID) (bool, error) {
	for _, d := range m.rooms {
		if d == id {
			return true, nil
		}
	}
	for _, u := range m.users {
		if u.DepartmentID != nil && *u.DepartmentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) InsertUser(_ context.Context, u domain.User, _ string) (domain.User, error) {
	m.writes++
	for _, x := range m.users {
		if x.Email == u.Email {
			return domain.User{}, perr.New(perr.ErrorCodeDuplicateKey, "users_email_key_key")
		}
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memRepo) UserByID(_ context.Context, id uuid.UUID) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, perr.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) Users(_ context.Context, f domain.UserFilter) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if f.DepartmentID != nil && (u.DepartmentID == nil || *u.DepartmentID != *f.DepartmentID) {
			continue
		}
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *memRepo) RoomDepartment(_ context.Context, roomID uuid.UUID) (uuid.UUID, error) {
	d, ok := m.rooms[roomID]
	if !ok {
		return uuid.Nil, perr.ErrNotFound
	}
	return d, nil
}

func (m *memRepo) UpsertStaff(_ context.Context, userID, roomID uuid.UUID) (time.Time, error) {
	m.writes++
	m.staff[userID] = roomID
	return time.Now(), nil
}

func (m *memRepo) DeleteStaff(_ context.Context, userID uuid.UUID) error {
	m.writes++
	if _, ok := m.staff[userID]; !ok {
		return perr.ErrNotFound
	}
	delete(m.staff, userID)
	return nil
}

func (m *memRepo) StaffByRoom(_ context.Context, roomID uuid.UUID) ([]domain.Staff, error) {
	var out []domain.Staff
	for uid, rid := range m.staff {
		if rid == roomID {
			u := m.users[uid]
			out = append(out, domain.Staff{UserID: uid, RoomID: rid, FullName: u.FullName, Email: u.Email})
		}
	}
	return out, nil
}
