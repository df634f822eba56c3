package access

import (
	_ "embed"

	"recordkeeper/internal/core/actor"
	perr "recordkeeper/internal/platform/errors"

	"github.com/cedar-policy/cedar-go"
)

//go:embed policies.cedar
var defaultPolicies []byte

// Policy decides role permissions with a Cedar policy set
type Policy struct {
	set *cedar.PolicySet
}

// Verdict is the outcome of a policy check
type Verdict struct {
	Allowed  bool
	PolicyID string
}

// NewPolicy parses src, or the embedded policies when src is empty
func NewPolicy(src []byte) (*Policy, error) {
	name := "policies.cedar"
	if len(src) == 0 {
		src = defaultPolicies
	} else {
		name = "override.cedar"
	}
	ps, err := cedar.NewPolicySetFromBytes(name, src)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInternal, "access: parse policies")
	}
	return &Policy{set: ps}, nil
}

// MustPolicy is NewPolicy that panics, for startup wiring
func MustPolicy(src []byte) *Policy {
	p, err := NewPolicy(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Allowed checks whether a may perform action
func (p *Policy) Allowed(a actor.Actor, action string) Verdict {
	principal := cedar.NewEntityUID("User", cedar.String(a.UserID.String()))
	resource := cedar.NewEntityUID("Records", cedar.String("system"))

	entities := cedar.EntityMap{
		principal: cedar.Entity{
			UID:     principal,
			Parents: cedar.NewEntityUIDSet(),
			Attributes: cedar.NewRecord(cedar.RecordMap{
				"role":       cedar.String(string(a.Role)),
				"department": cedar.String(a.DepartmentID.String()),
			}),
		},
		resource: cedar.Entity{
			UID:        resource,
			Parents:    cedar.NewEntityUIDSet(),
			Attributes: cedar.NewRecord(cedar.RecordMap{}),
		},
	}

	req := cedar.Request{
		Principal: principal,
		Action:    cedar.NewEntityUID("Action", cedar.String(action)),
		Resource:  resource,
		Context:   cedar.NewRecord(cedar.RecordMap{}),
	}

	decision, diag := p.set.IsAuthorized(entities, req)
	v := Verdict{Allowed: decision == cedar.Allow}
	if len(diag.Reasons) > 0 {
		v.PolicyID = string(diag.Reasons[0].PolicyID)
	}
	return v
}
