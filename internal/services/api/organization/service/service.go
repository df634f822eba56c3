// Package service contains organization request handlers and their rules
package service

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/services/api/organization/domain"
	"recordkeeper/internal/services/api/organization/repo"
)

// Svc handles department, user and staff requests
type Svc struct {
	Repo     repo.Repo
	binder   repokit.Binder[repo.Repo]
	db       repokit.TxRunner
	attempts int
}

// Options control service behavior
type Options struct {
	// TxAttempts is the total number of tries for retryable tx failures
	TxAttempts int
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("organization.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("organization.Service requires a non nil Repo binder")
	}
	attempts := opt.TxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		attempts: attempts,
	}
}

// Register implements mediator.Registrar
func (s *Svc) Register(r *mediator.Registry) {
	// departments
	mediator.ValidateWith[domain.CreateDepartment](r, createDepartmentRules)
	mediator.Authorize(r, adminArea[domain.CreateDepartment])
	mediator.Authorize(r, mediator.Require[domain.CreateDepartment](permission(actionDepartmentCreate)))
	mediator.Handle(r, s.CreateDepartment)

	mediator.ValidateWith[domain.UpdateDepartment](r, updateDepartmentRules)
	mediator.Authorize(r, adminArea[domain.UpdateDepartment])
	mediator.Authorize(r, manageDepartment[domain.UpdateDepartment](actionDepartmentUpdate))
	mediator.Handle(r, s.UpdateDepartment)

	mediator.ValidateWith[domain.DeleteDepartment](r, deleteDepartmentRules)
	mediator.Authorize(r, adminArea[domain.DeleteDepartment])
	mediator.Authorize(r, manageDepartment[domain.DeleteDepartment](actionDepartmentDelete))
	mediator.Handle(r, s.DeleteDepartment)

	mediator.ValidateWith[domain.GetDepartmentByID](r, getDepartmentRules)
	mediator.Handle(r, s.GetDepartmentByID)
	mediator.Handle(r, s.GetAllDepartments)

	// users
	mediator.ValidateWith[domain.CreateUser](r, createUserRules)
	mediator.Authorize(r, adminArea[domain.CreateUser])
	mediator.Handle(r, s.CreateUser)

	mediator.ValidateWith[domain.GetUserByID](r, getUserRules)
	mediator.Authorize(r, mediator.Require[domain.GetUserByID](permission(actionUserRead)))
	mediator.Handle(r, s.GetUserByID)

	mediator.ValidateWith[domain.GetAllUsers](r, getAllUsersRules)
	mediator.Authorize(r, authorizeGetAllUsers)
	mediator.Handle(r, s.GetAllUsers)

	// staff
	mediator.ValidateWith[domain.AssignStaff](r, assignStaffRules)
	mediator.Authorize(r, authorizeAssignStaff)
	mediator.Handle(r, s.AssignStaff)

	mediator.ValidateWith[domain.UnassignStaff](r, unassignStaffRules)
	mediator.Authorize(r, adminArea[domain.UnassignStaff])
	mediator.Handle(r, s.UnassignStaff)

	mediator.ValidateWith[domain.GetStaffByRoom](r, staffByRoomRules)
	mediator.Authorize(r, authorizeStaffByRoom)
	mediator.Handle(r, s.GetStaffByRoom)
}
