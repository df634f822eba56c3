package service

import (
	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/core/rules"
	"recordkeeper/internal/services/api/storage/domain"

	"github.com/google/uuid"
)

// validators

var addLockerRules = rules.For[domain.AddLocker]().
	Field("room_id").
	Must(rules.Present(func(c domain.AddLocker) uuid.UUID { return c.RoomID }), "RoomId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.AddLocker) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.AddLocker) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.AddLocker) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("capacity").
	Must(rules.AtLeast(func(c domain.AddLocker) int { return c.Capacity }, 0), "Capacity must be non-negative").
	Must(rules.AtMost(func(c domain.AddLocker) int { return c.Capacity }, rules.MaxCapacity), "Capacity must be at most 2147483647").
	Set()

var updateLockerRules = rules.For[domain.UpdateLocker]().
	Field("locker_id").
	Must(rules.Present(func(c domain.UpdateLocker) uuid.UUID { return c.LockerID }), "LockerId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.UpdateLocker) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.UpdateLocker) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.UpdateLocker) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("capacity").
	Must(rules.AtLeast(func(c domain.UpdateLocker) int { return c.Capacity }, 0), "Capacity must be non-negative").
	Must(rules.AtMost(func(c domain.UpdateLocker) int { return c.Capacity }, rules.MaxCapacity), "Capacity must be at most 2147483647").
	Set()

var removeLockerRules = rules.For[domain.RemoveLocker]().
	Field("locker_id").
	Must(rules.Present(func(c domain.RemoveLocker) uuid.UUID { return c.LockerID }), "LockerId is required").
	Set()

var getLockerRules = rules.For[domain.GetLockerByID]().
	Field("locker_id").
	Must(rules.Present(func(q domain.GetLockerByID) uuid.UUID { return q.LockerID }), "LockerId is required").
	Set()

var getAllLockersRules = rules.For[domain.GetAllLockers]().
	Field("room_id").
	Must(rules.Present(func(q domain.GetAllLockers) uuid.UUID { return q.RoomID }), "RoomId is required").
	Set()

var addFolderRules = rules.For[domain.AddFolder]().
	Field("locker_id").
	Must(rules.Present(func(c domain.AddFolder) uuid.UUID { return c.LockerID }), "LockerId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.AddFolder) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.AddFolder) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.AddFolder) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("capacity").
	Must(rules.AtLeast(func(c domain.AddFolder) int { return c.Capacity }, 0), "Capacity must be non-negative").
	Must(rules.AtMost(func(c domain.AddFolder) int { return c.Capacity }, rules.MaxCapacity), "Capacity must be at most 2147483647").
	Set()

var updateFolderRules = rules.For[domain.UpdateFolder]().
	Field("folder_id").
	Must(rules.Present(func(c domain.UpdateFolder) uuid.UUID { return c.FolderID }), "FolderId is required").
	Field("name").Stop().
	Must(rules.NotBlank(func(c domain.UpdateFolder) string { return c.Name }), "Name is required").
	Must(rules.MaxLen(func(c domain.UpdateFolder) string { return c.Name }, rules.MaxName), "Name must be at most 64 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.UpdateFolder) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("capacity").
	Must(rules.AtLeast(func(c domain.UpdateFolder) int { return c.Capacity }, 0), "Capacity must be non-negative").
	Must(rules.AtMost(func(c domain.UpdateFolder) int { return c.Capacity }, rules.MaxCapacity), "Capacity must be at most 2147483647").
	Set()

var removeFolderRules = rules.For[domain.RemoveFolder]().
	Field("folder_id").
	Must(rules.Present(func(c domain.RemoveFolder) uuid.UUID { return c.FolderID }), "FolderId is required").
	Set()

var getFolderRules = rules.For[domain.GetFolderByID]().
	Field("folder_id").
	Must(rules.Present(func(q domain.GetFolderByID) uuid.UUID { return q.FolderID }), "FolderId is required").
	Set()

var getAllFoldersRules = rules.For[domain.GetAllFolders]().
	Field("room_id").
	Must(rules.OptionalPresent(func(q domain.GetAllFolders) *uuid.UUID { return q.RoomID }), "RoomId must not be empty").
	Field("locker_id").Stop().
	Must(rules.OptionalPresent(func(q domain.GetAllFolders) *uuid.UUID { return q.LockerID }), "LockerId must not be empty").
	Must(rules.Requires(
		func(q domain.GetAllFolders) *uuid.UUID { return q.LockerID },
		func(q domain.GetAllFolders) *uuid.UUID { return q.RoomID },
	), "LockerId can only be set together with RoomId").
	Set()

// authorizers

func authorizeAddLocker(c domain.AddLocker) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionLockerCreate},
		authz.RoomOwnership{RoomID: c.RoomID},
		authz.StaffAssignment{RoomID: c.RoomID},
	}
}

func authorizeUpdateLocker(c domain.UpdateLocker) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionLockerUpdate},
		authz.LockerOwnership{LockerID: c.LockerID},
	}
}

func authorizeRemoveLocker(c domain.RemoveLocker) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionLockerDelete},
		authz.LockerOwnership{LockerID: c.LockerID},
	}
}

func authorizeGetLocker(q domain.GetLockerByID) []authz.Requirement {
	return []authz.Requirement{authz.LockerOwnership{LockerID: q.LockerID}}
}

func authorizeGetAllLockers(q domain.GetAllLockers) []authz.Requirement {
	return []authz.Requirement{authz.RoomOwnership{RoomID: q.RoomID}}
}

func authorizeAddFolder(c domain.AddFolder) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionFolderCreate},
		authz.LockerOwnership{LockerID: c.LockerID},
	}
}

func authorizeUpdateFolder(c domain.UpdateFolder) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionFolderUpdate},
		authz.FolderOwnership{FolderID: c.FolderID},
	}
}

func authorizeRemoveFolder(c domain.RemoveFolder) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionFolderDelete},
		authz.FolderOwnership{FolderID: c.FolderID},
	}
}

func authorizeGetFolder(q domain.GetFolderByID) []authz.Requirement {
	return []authz.Requirement{authz.FolderOwnership{FolderID: q.FolderID}}
}

// the most specific container decides; with none the handler scopes by department
func authorizeGetAllFolders(q domain.GetAllFolders) []authz.Requirement {
	out := []authz.Requirement{authz.Permission{Action: authz.ActionFolderRead}}
	switch {
	case q.LockerID != nil:
		out = append(out, authz.LockerOwnership{LockerID: *q.LockerID})
	case q.RoomID != nil:
		out = append(out, authz.RoomOwnership{RoomID: *q.RoomID})
	}
	return out
}
