package access

import (
	"testing"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/authz"
	perr "recordkeeper/internal/platform/errors"
	kit "recordkeeper/internal/platform/testkit"

	"github.com/google/uuid"
)

func TestPolicyMatrix(t *testing.T) {
	p := MustPolicy(nil)
	dept := uuid.New()
	admin := actor.Actor{UserID: uuid.New(), Role: actor.RoleAdmin}
	staff := actor.Actor{UserID: uuid.New(), Role: actor.RoleStaff, DepartmentID: dept}
	employee := actor.Actor{UserID: uuid.New(), Role: actor.RoleEmployee, DepartmentID: dept}

	cases := []struct {
		who    actor.Actor
		action string
		want   bool
	}{
		{admin, authz.ActionDepartmentDelete, true},
		{admin, authz.ActionDocumentUpdate, true},
		{staff, authz.ActionDepartmentCreate, false},
		{staff, authz.ActionRoomCreate, false},
		{staff, authz.ActionRoomUpdate, true},
		{staff, authz.ActionLockerUpdate, true},
		{staff, authz.ActionFolderDelete, true},
		{employee, authz.ActionDocumentCreate, true},
		{employee, authz.ActionDocumentRead, true},
		{employee, authz.ActionDocumentDelete, false},
		{employee, authz.ActionLockerUpdate, false},
		{employee, authz.ActionUserRead, false},
	}
	for _, c := range cases {
		v := p.Allowed(c.who, c.action)
		if v.Allowed != c.want {
			t.Fatalf("%s %s: allowed = %v, want %v", c.who.Role, c.action, v.Allowed, c.want)
		}
		if v.Allowed && v.PolicyID == "" {
			t.Fatalf("%s %s: allow without a policy id", c.who.Role, c.action)
		}
	}
}

func TestPolicyOverride(t *testing.T) {
	src := []byte(`permit (principal, action == Action::"room:read", resource);`)
	p, err := NewPolicy(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a := actor.Actor{UserID: uuid.New(), Role: actor.RoleAdmin}
	if !p.Allowed(a, authz.ActionRoomRead).Allowed || p.Allowed(a, authz.ActionRoomDelete).Allowed {
		t.Fatalf("override policy not applied")
	}
}

func TestPolicyParseError(t *testing.T) {
	_, err := NewPolicy([]byte("permit ("))
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
	kit.MustPanic(t, func() { MustPolicy([]byte("nope")) })
}
