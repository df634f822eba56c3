package service

import (
	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/core/rules"
	"recordkeeper/internal/services/api/organization/domain"

	"github.com/google/uuid"
)

const (
	actionDepartmentCreate = authz.ActionDepartmentCreate
	actionDepartmentUpdate = authz.ActionDepartmentUpdate
	actionDepartmentDelete = authz.ActionDepartmentDelete
	actionUserRead         = authz.ActionUserRead
)

// validators

var createDepartmentRules = rules.For[domain.CreateDepartment]().
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.CreateDepartment) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.CreateDepartment) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Set()

var updateDepartmentRules = rules.For[domain.UpdateDepartment]().
	Field("department_id").
	Must(rules.Present(func(c domain.UpdateDepartment) uuid.UUID { return c.DepartmentID }), "DepartmentId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.UpdateDepartment) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.UpdateDepartment) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Set()

var deleteDepartmentRules = rules.For[domain.DeleteDepartment]().
	Field("department_id").
	Must(rules.Present(func(c domain.DeleteDepartment) uuid.UUID { return c.DepartmentID }), "DepartmentId is required").
	Set()

var getDepartmentRules = rules.For[domain.GetDepartmentByID]().
	Field("department_id").
	Must(rules.Present(func(q domain.GetDepartmentByID) uuid.UUID { return q.DepartmentID }), "DepartmentId is required").
	Set()

// createUserRules folds in struct tags for email and role formats
var createUserRules = rules.For[domain.CreateUser]().Tags().
	Field("department_id").
	When(func(c domain.CreateUser) bool { return c.Role != actor.RoleAdmin }).
	Must(func(c domain.CreateUser) bool { return c.DepartmentID != nil && *c.DepartmentID != uuid.Nil }, "DepartmentId is required unless role is admin").
	Set()

var getUserRules = rules.For[domain.GetUserByID]().
	Field("user_id").
	Must(rules.Present(func(q domain.GetUserByID) uuid.UUID { return q.UserID }), "UserId is required").
	Set()

var getAllUsersRules = rules.For[domain.GetAllUsers]().
	Field("department_id").
	Must(rules.OptionalPresent(func(q domain.GetAllUsers) *uuid.UUID { return q.DepartmentID }), "DepartmentId must not be empty").
	Field("role").
	Must(func(q domain.GetAllUsers) bool { return q.Role == nil || q.Role.Valid() }, "Role must be one of admin, staff, employee").
	Set()

var assignStaffRules = rules.For[domain.AssignStaff]().
	Field("user_id").
	Must(rules.Present(func(c domain.AssignStaff) uuid.UUID { return c.UserID }), "UserId is required").
	Field("room_id").
	Must(rules.Present(func(c domain.AssignStaff) uuid.UUID { return c.RoomID }), "RoomId is required").
	Set()

var unassignStaffRules = rules.For[domain.UnassignStaff]().
	Field("user_id").
	Must(rules.Present(func(c domain.UnassignStaff) uuid.UUID { return c.UserID }), "UserId is required").
	Set()

var staffByRoomRules = rules.For[domain.GetStaffByRoom]().
	Field("room_id").
	Must(rules.Present(func(q domain.GetStaffByRoom) uuid.UUID { return q.RoomID }), "RoomId is required").
	Set()

// authorizers

func permission(action string) authz.Requirement { return authz.Permission{Action: action} }

// adminArea guards every administrative command
func adminArea[T any](T) []authz.Requirement {
	return []authz.Requirement{authz.HasRole{Role: actor.RoleAdmin}}
}

// manageDepartment states what changing a department takes
// it overlaps adminArea on purpose; equal requirements are evaluated once
func manageDepartment[T any](action string) func(T) []authz.Requirement {
	return func(T) []authz.Requirement {
		return []authz.Requirement{
			authz.HasRole{Role: actor.RoleAdmin},
			permission(action),
		}
	}
}

func authorizeGetAllUsers(q domain.GetAllUsers) []authz.Requirement {
	out := []authz.Requirement{permission(actionUserRead)}
	if q.DepartmentID != nil {
		out = append(out, authz.DepartmentMember{DepartmentID: *q.DepartmentID})
	}
	return out
}

func authorizeAssignStaff(c domain.AssignStaff) []authz.Requirement {
	return []authz.Requirement{
		authz.HasRole{Role: actor.RoleAdmin},
		authz.RoomOwnership{RoomID: c.RoomID},
	}
}

func authorizeStaffByRoom(q domain.GetStaffByRoom) []authz.Requirement {
	return []authz.Requirement{authz.RoomOwnership{RoomID: q.RoomID}}
}
