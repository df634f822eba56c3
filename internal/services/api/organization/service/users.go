package service

import (
	"context"
	"strings"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/normalize"
	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/services/api/organization/domain"

	"github.com/google/uuid"
)

// CreateUser stores an account; the department must exist when given
func (s *Svc) CreateUser(ctx context.Context, c domain.CreateUser) (domain.User, error) {
	if c.DepartmentID != nil {
		if _, err := s.Repo.DepartmentByID(ctx, *c.DepartmentID); err != nil {
			return domain.User{}, repokit.NotFound(err, "department", *c.DepartmentID)
		}
	}
	email := strings.TrimSpace(c.Email)
	u := domain.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     normalize.Name(c.FullName),
		Role:         c.Role,
		DepartmentID: c.DepartmentID,
		IsActive:     true,
	}
	out, err := s.Repo.InsertUser(ctx, u, normalize.Key(email))
	if err != nil {
		return domain.User{}, repokit.Duplicate(err, "user %q already exists", email)
	}
	return out, nil
}

// GetUserByID reads one account
// users of other departments are reported missing to non-admin callers
func (s *Svc) GetUserByID(ctx context.Context, q domain.GetUserByID) (domain.User, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.Repo.UserByID(ctx, q.UserID)
	if err != nil {
		return domain.User{}, repokit.NotFound(err, "user", q.UserID)
	}
	if !a.IsAdmin() && (u.DepartmentID == nil || !a.InDepartment(*u.DepartmentID)) {
		return domain.User{}, repokit.NotFound(errNotFound, "user", q.UserID)
	}
	return u, nil
}

// GetAllUsers lists accounts; non-admin callers only see their own department
func (s *Svc) GetAllUsers(ctx context.Context, q domain.GetAllUsers) ([]domain.User, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return nil, err
	}
	f := domain.UserFilter{DepartmentID: q.DepartmentID, Role: q.Role}
	if !a.IsAdmin() {
		dept := a.DepartmentID
		f.DepartmentID = &dept
	}
	us, err := s.Repo.Users(ctx, f)
	if err != nil {
		return nil, err
	}
	if us == nil {
		us = []domain.User{}
	}
	return us, nil
}
