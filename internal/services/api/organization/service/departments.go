package service

import (
	"context"

	"recordkeeper/internal/core/normalize"
	"recordkeeper/internal/modkit/repokit"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/store"
	"recordkeeper/internal/services/api/organization/domain"

	"github.com/google/uuid"
)

// CreateDepartment stores a department under its canonical name
func (s *Svc) CreateDepartment(ctx context.Context, c domain.CreateDepartment) (domain.Department, error) {
	name := normalize.Name(c.Name)
	d, err := s.Repo.InsertDepartment(ctx, domain.Department{ID: uuid.New(), Name: name}, normalize.Key(name))
	if err != nil {
		return domain.Department{}, repokit.Duplicate(err, "department %q already exists", name)
	}
	return d, nil
}

// UpdateDepartment renames a department
func (s *Svc) UpdateDepartment(ctx context.Context, c domain.UpdateDepartment) (domain.Department, error) {
	name := normalize.Name(c.Name)
	d, err := s.Repo.RenameDepartment(ctx, c.DepartmentID, name, normalize.Key(name))
	if err != nil {
		err = repokit.NotFound(err, "department", c.DepartmentID)
		return domain.Department{}, repokit.Duplicate(err, "department %q already exists", name)
	}
	return d, nil
}

// DeleteDepartment removes a department that no room or user references
func (s *Svc) DeleteDepartment(ctx context.Context, c domain.DeleteDepartment) (struct{}, error) {
	err := store.RunTx(ctx, s.db, s.attempts, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		if _, err := r.DepartmentByID(ctx, c.DepartmentID); err != nil {
			return repokit.NotFound(err, "department", c.DepartmentID)
		}
		used, err := r.DepartmentInUse(ctx, c.DepartmentID)
		if err != nil {
			return err
		}
		if used {
			return perr.Conflictf("department %s still has rooms or users", c.DepartmentID)
		}
		return repokit.NotFound(r.DeleteDepartment(ctx, c.DepartmentID), "department", c.DepartmentID)
	})
	return struct{}{}, err
}

// GetDepartmentByID reads one department
func (s *Svc) GetDepartmentByID(ctx context.Context, q domain.GetDepartmentByID) (domain.Department, error) {
	d, err := s.Repo.DepartmentByID(ctx, q.DepartmentID)
	if err != nil {
		return domain.Department{}, repokit.NotFound(err, "department", q.DepartmentID)
	}
	return d, nil
}

// GetAllDepartments lists every department by name
func (s *Svc) GetAllDepartments(ctx context.Context, _ domain.GetAllDepartments) ([]domain.Department, error) {
	ds, err := s.Repo.Departments(ctx)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		ds = []domain.Department{}
	}
	return ds, nil
}
