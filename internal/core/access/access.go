// Package access evaluates authorization requirements for the caller on the
// request context
//
// Evaluators only read state. A resource that cannot be found is reported as a
// denial with the same message as a resource owned by another department, so
// non-admin callers cannot probe for existence. Admins skip ownership lookups
// entirely and see NotFound from the request handler instead.
package access

import (
	"context"
	"errors"
	"fmt"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/core/mediator"
	perr "recordkeeper/internal/platform/errors"

	"github.com/google/uuid"
)

// OwnershipReader resolves which department owns a resource
// Missing rows are reported with perr.ErrorCodeNotFound
type OwnershipReader interface {
	RoomDepartment(ctx context.Context, roomID uuid.UUID) (uuid.UUID, error)
	LockerDepartment(ctx context.Context, lockerID uuid.UUID) (uuid.UUID, error)
	FolderDepartment(ctx context.Context, folderID uuid.UUID) (uuid.UUID, error)
	DocumentDepartment(ctx context.Context, documentID uuid.UUID) (uuid.UUID, error)
	// StaffRoom returns the room a staff user is assigned to; ok is false when unassigned
	StaffRoom(ctx context.Context, userID uuid.UUID) (roomID uuid.UUID, ok bool, err error)
}

// Evaluators decides every requirement kind in authz
type Evaluators struct {
	owners OwnershipReader
	policy *Policy
}

// New builds the evaluator set; both collaborators are required
func New(owners OwnershipReader, policy *Policy) *Evaluators {
	if owners == nil {
		panic("access: nil OwnershipReader")
	}
	if policy == nil {
		panic("access: nil Policy")
	}
	return &Evaluators{owners: owners, policy: policy}
}

// Register implements mediator.Registrar
func (e *Evaluators) Register(r *mediator.Registry) {
	mediator.Evaluate(r, e.HasRole)
	mediator.Evaluate(r, e.Permission)
	mediator.Evaluate(r, e.DepartmentMember)
	mediator.Evaluate(r, e.RoomOwnership)
	mediator.Evaluate(r, e.LockerOwnership)
	mediator.Evaluate(r, e.FolderOwnership)
	mediator.Evaluate(r, e.DocumentOwnership)
	mediator.Evaluate(r, e.StaffAssignment)
}

// HasRole decides authz.HasRole
func (e *Evaluators) HasRole(ctx context.Context, q authz.HasRole) (authz.Result, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return authz.Result{}, err
	}
	if a.Role != q.Role {
		return authz.Denyf("requires role %s", q.Role), nil
	}
	return authz.Allow(), nil
}

// Permission decides authz.Permission with the policy set
func (e *Evaluators) Permission(ctx context.Context, q authz.Permission) (authz.Result, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return authz.Result{}, err
	}
	if !e.policy.Allowed(a, q.Action).Allowed {
		return authz.Denyf("role %s may not perform %s", a.Role, q.Action), nil
	}
	return authz.Allow(), nil
}

// DepartmentMember decides authz.DepartmentMember
func (e *Evaluators) DepartmentMember(ctx context.Context, q authz.DepartmentMember) (authz.Result, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return authz.Result{}, err
	}
	if a.IsAdmin() || a.InDepartment(q.DepartmentID) {
		return authz.Allow(), nil
	}
	return authz.Denyf("department %s is not accessible", q.DepartmentID), nil
}

// RoomOwnership decides authz.RoomOwnership
func (e *Evaluators) RoomOwnership(ctx context.Context, q authz.RoomOwnership) (authz.Result, error) {
	return e.owned(ctx, "room", q.RoomID, e.owners.RoomDepartment)
}

// LockerOwnership decides authz.LockerOwnership
func (e *Evaluators) LockerOwnership(ctx context.Context, q authz.LockerOwnership) (authz.Result, error) {
	return e.owned(ctx, "locker", q.LockerID, e.owners.LockerDepartment)
}

// FolderOwnership decides authz.FolderOwnership
func (e *Evaluators) FolderOwnership(ctx context.Context, q authz.FolderOwnership) (authz.Result, error) {
	return e.owned(ctx, "folder", q.FolderID, e.owners.FolderDepartment)
}

// DocumentOwnership decides authz.DocumentOwnership
func (e *Evaluators) DocumentOwnership(ctx context.Context, q authz.DocumentOwnership) (authz.Result, error) {
	return e.owned(ctx, "document", q.DocumentID, e.owners.DocumentDepartment)
}

// StaffAssignment decides authz.StaffAssignment
func (e *Evaluators) StaffAssignment(ctx context.Context, q authz.StaffAssignment) (authz.Result, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return authz.Result{}, err
	}
	if a.Role != actor.RoleStaff {
		return authz.Allow(), nil
	}
	room, ok, err := e.owners.StaffRoom(ctx, a.UserID)
	if err != nil {
		return authz.Result{}, lookupErr("staff room", err)
	}
	if !ok || room != q.RoomID {
		return authz.Denyf("not assigned to room %s", q.RoomID), nil
	}
	return authz.Allow(), nil
}

func (e *Evaluators) owned(ctx context.Context, kind string, id uuid.UUID, lookup func(context.Context, uuid.UUID) (uuid.UUID, error)) (authz.Result, error) {
	a, err := actor.Require(ctx)
	if err != nil {
		return authz.Result{}, err
	}
	if a.IsAdmin() {
		return authz.Allow(), nil
	}
	dept, err := lookup(ctx, id)
	switch {
	case perr.IsCode(err, perr.ErrorCodeNotFound):
		return notAccessible(kind, id), nil
	case err != nil:
		return authz.Result{}, lookupErr(kind, err)
	case !a.InDepartment(dept):
		return notAccessible(kind, id), nil
	}
	return authz.Allow(), nil
}

func notAccessible(kind string, id uuid.UUID) authz.Result {
	return authz.Deny(fmt.Sprintf("%s %s is not accessible", kind, id))
}

// lookupErr keeps cancellation recognisable and marks everything else internal
func lookupErr(kind string, err error) error {
	if perr.IsCode(err, perr.ErrorCodeUnavailable) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "request cancelled")
	}
	return perr.Wrapf(err, perr.ErrorCodeInternal, "access: %s ownership lookup", kind)
}
