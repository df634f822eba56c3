// Package actor carries the authenticated caller through a request context
package actor

import (
	"context"

	perr "recordkeeper/internal/platform/errors"

	"github.com/google/uuid"
)

// Role is the coarse role claim of a caller
type Role string

// Roles understood by the permission policy
const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleEmployee:
		return true
	}
	return false
}

// Actor is the identity and claims of the caller; read-only to the core
// DepartmentID is uuid.Nil for admins without a department
type Actor struct {
	UserID       uuid.UUID
	Role         Role
	DepartmentID uuid.UUID
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// InDepartment reports whether the actor belongs to dept
func (a Actor) InDepartment(dept uuid.UUID) bool {
	return dept != uuid.Nil && a.DepartmentID == dept
}

// Check returns an internal error when the claims are malformed
func (a Actor) Check() error {
	if a.UserID == uuid.Nil {
		return perr.Internalf("actor: missing user id")
	}
	if !a.Role.Valid() {
		return perr.Internalf("actor: unknown role %q", a.Role)
	}
	if a.Role != RoleAdmin && a.DepartmentID == uuid.Nil {
		return perr.Internalf("actor: %s without department", a.Role)
	}
	return nil
}

type ctxKey struct{}

// With stores a on ctx
func With(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// From returns the actor stored on ctx
func From(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}

// Require returns a well-formed actor or an internal error
func Require(ctx context.Context) (Actor, error) {
	a, ok := From(ctx)
	if !ok {
		return Actor{}, perr.Internalf("actor: missing from context")
	}
	if err := a.Check(); err != nil {
		return Actor{}, err
	}
	return a, nil
}
