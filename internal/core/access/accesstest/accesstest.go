// Package accesstest builds a dispatch pipeline over in-memory ownership data
// for service tests
package accesstest

import (
	"context"
	"testing"

	"recordkeeper/internal/core/access"
	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/mediator"
	perr "recordkeeper/internal/platform/errors"
	pnet "recordkeeper/internal/platform/net"

	"github.com/google/uuid"
)

// Owners is a map backed access.OwnershipReader
// unknown ids report NotFound like the Postgres reader
type Owners struct {
	Rooms     map[uuid.UUID]uuid.UUID
	Lockers   map[uuid.UUID]uuid.UUID
	Folders   map[uuid.UUID]uuid.UUID
	Documents map[uuid.UUID]uuid.UUID
	Staff     map[uuid.UUID]uuid.UUID
}

// NewOwners returns empty maps ready for seeding
func NewOwners() *Owners {
	return &Owners{
		Rooms:     map[uuid.UUID]uuid.UUID{},
		Lockers:   map[uuid.UUID]uuid.UUID{},
		Folders:   map[uuid.UUID]uuid.UUID{},
		Documents: map[uuid.UUID]uuid.UUID{},
		Staff:     map[uuid.UUID]uuid.UUID{},
	}
}

func find(m map[uuid.UUID]uuid.UUID, id uuid.UUID) (uuid.UUID, error) {
	d, ok := m[id]
	if !ok {
		return uuid.Nil, perr.ErrNotFound
	}
	return d, nil
}

// RoomDepartment implements access.OwnershipReader
func (o *Owners) RoomDepartment(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return find(o.Rooms, id)
}

// LockerDepartment implements access.OwnershipReader
func (o *Owners) LockerDepartment(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return find(o.Lockers, id)
}

// FolderDepartment implements access.OwnershipReader
func (o *Owners) FolderDepartment(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return find(o.Folders, id)
}

// DocumentDepartment implements access.OwnershipReader
func (o *Owners) DocumentDepartment(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return find(o.Documents, id)
}

// StaffRoom implements access.OwnershipReader
func (o *Owners) StaffRoom(_ context.Context, user uuid.UUID) (uuid.UUID, bool, error) {
	r, ok := o.Staff[user]
	return r, ok, nil
}

// Bus builds a mediator with the access evaluators and the given registrars
func Bus(t *testing.T, owners access.OwnershipReader, rs ...mediator.Registrar) *mediator.Mediator {
	t.Helper()
	reg := mediator.NewRegistry()
	reg.Install(access.New(owners, access.MustPolicy(nil)))
	reg.Install(rs...)
	if o := reg.Orphans(); len(o) > 0 {
		t.Fatalf("orphan registrations: %v", o)
	}
	return mediator.New(reg)
}

// As returns a context carrying a caller with role in dept
func As(role actor.Role, dept uuid.UUID) (context.Context, actor.Actor) {
	a := actor.Actor{UserID: uuid.New(), Role: role, DepartmentID: dept}
	ctx := pnet.WithRequest(context.Background(), "test-req", a.UserID.String())
	return actor.With(ctx, a), a
}
