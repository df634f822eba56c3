package service

import (
	"context"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/organization/domain"
)

var errNotFound = perr.ErrNotFound

// AssignStaff places an active staff user in a room of their department
func (s *Svc) AssignStaff(ctx context.Context, c domain.AssignStaff) (domain.Staff, error) {
	var out domain.Staff
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		u, err := r.UserByID(ctx, c.UserID)
		if err != nil {
			return repokit.NotFound(err, "user", c.UserID)
		}
		if u.Role != actor.RoleStaff {
			return perr.Conflictf("user %s is not staff", c.UserID)
		}
		if !u.IsActive {
			return perr.Conflictf("user %s is inactive", c.UserID)
		}
		dept, err := r.RoomDepartment(ctx, c.RoomID)
		if err != nil {
			return repokit.NotFound(err, "room", c.RoomID)
		}
		if u.DepartmentID == nil || *u.DepartmentID != dept {
			return perr.Conflictf("user %s belongs to another department than room %s", c.UserID, c.RoomID)
		}
		at, err := r.UpsertStaff(ctx, c.UserID, c.RoomID)
		if err != nil {
			return err
		}
		out = domain.Staff{UserID: u.ID, RoomID: c.RoomID, FullName: u.FullName, Email: u.Email, AssignedAt: at}
		return nil
	})
	return out, err
}

// UnassignStaff clears a staff user's room
func (s *Svc) UnassignStaff(ctx context.Context, c domain.UnassignStaff) (struct{}, error) {
	err := s.Repo.DeleteStaff(ctx, c.UserID)
	return struct{}{}, repokit.NotFound(err, "staff assignment for user", c.UserID)
}

// GetStaffByRoom lists the staff assigned to a room
func (s *Svc) GetStaffByRoom(ctx context.Context, q domain.GetStaffByRoom) ([]domain.Staff, error) {
	if _, err := s.Repo.RoomDepartment(ctx, q.RoomID); err != nil {
		return nil, repokit.NotFound(err, "room", q.RoomID)
	}
	st, err := s.Repo.StaffByRoom(ctx, q.RoomID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = []domain.Staff{}
	}
	return st, nil
}
