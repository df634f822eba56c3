package service

import (
	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/core/rules"
	"recordkeeper/internal/services/api/rooms/domain"

	"github.com/google/uuid"
)

// validators

var addRoomRules = rules.For[domain.AddRoom]().
	Field("department_id").
	Must(rules.Present(func(c domain.AddRoom) uuid.UUID { return c.DepartmentID }), "DepartmentId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.AddRoom) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.AddRoom) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.AddRoom) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("capacity").
	Must(rules.AtLeast(func(c domain.AddRoom) int { return c.Capacity }, 1), "Capacity must be at least 1").
	Must(rules.AtMost(func(c domain.AddRoom) int { return c.Capacity }, rules.MaxCapacity), "Capacity must be at most 2147483647").
	Set()

var updateRoomRules = rules.For[domain.UpdateRoom]().
	Field("room_id").
	Must(rules.Present(func(c domain.UpdateRoom) uuid.UUID { return c.RoomID }), "RoomId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.UpdateRoom) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.UpdateRoom) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.UpdateRoom) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("capacity").
	Must(rules.AtLeast(func(c domain.UpdateRoom) int { return c.Capacity }, 1), "Capacity must be at least 1").
	Must(rules.AtMost(func(c domain.UpdateRoom) int { return c.Capacity }, rules.MaxCapacity), "Capacity must be at most 2147483647").
	Set()

var removeRoomRules = rules.For[domain.RemoveRoom]().
	Field("room_id").
	Must(rules.Present(func(c domain.RemoveRoom) uuid.UUID { return c.RoomID }), "RoomId is required").
	Set()

var getRoomRules = rules.For[domain.GetRoomByID]().
	Field("room_id").
	Must(rules.Present(func(q domain.GetRoomByID) uuid.UUID { return q.RoomID }), "RoomId is required").
	Set()

var getAllRoomsRules = rules.For[domain.GetAllRooms]().
	Field("department_id").
	Must(rules.OptionalPresent(func(q domain.GetAllRooms) *uuid.UUID { return q.DepartmentID }), "DepartmentId must not be empty").
	Set()

// authorizers

func authorizeAddRoom(c domain.AddRoom) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionRoomCreate},
		authz.DepartmentMember{DepartmentID: c.DepartmentID},
	}
}

func authorizeUpdateRoom(c domain.UpdateRoom) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionRoomUpdate},
		authz.RoomOwnership{RoomID: c.RoomID},
	}
}

func authorizeRemoveRoom(c domain.RemoveRoom) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionRoomDelete},
		authz.RoomOwnership{RoomID: c.RoomID},
	}
}

func authorizeGetRoom(q domain.GetRoomByID) []authz.Requirement {
	return []authz.Requirement{authz.RoomOwnership{RoomID: q.RoomID}}
}

func authorizeGetAllRooms(q domain.GetAllRooms) []authz.Requirement {
	out := []authz.Requirement{authz.Permission{Action: authz.ActionRoomRead}}
	if q.DepartmentID != nil {
		out = append(out, authz.DepartmentMember{DepartmentID: *q.DepartmentID})
	}
	return out
}
