package authz

import (
	"recordkeeper/internal/core/actor"

	"github.com/google/uuid"
)

// HasRole requires the caller to hold Role
type HasRole struct {
	Role actor.Role
}

// Kind implements Requirement
func (HasRole) Kind() string { return "has_role" }

// Permission requires the permission policy to allow Action for the caller
// Actions are "<resource>:<verb>", e.g. "locker:update"
type Permission struct {
	Action string
}

// Kind implements Requirement
func (Permission) Kind() string { return "permission" }

// DepartmentMember requires the caller to belong to DepartmentID
type DepartmentMember struct {
	DepartmentID uuid.UUID
}

// Kind implements Requirement
func (DepartmentMember) Kind() string { return "department_member" }

// RoomOwnership requires the room to belong to the caller's department
type RoomOwnership struct {
	RoomID uuid.UUID
}

// Kind implements Requirement
func (RoomOwnership) Kind() string { return "room_ownership" }

// LockerOwnership requires the locker's room to belong to the caller's department
type LockerOwnership struct {
	LockerID uuid.UUID
}

// Kind implements Requirement
func (LockerOwnership) Kind() string { return "locker_ownership" }

// FolderOwnership requires the folder's room to belong to the caller's department
type FolderOwnership struct {
	FolderID uuid.UUID
}

// Kind implements Requirement
func (FolderOwnership) Kind() string { return "folder_ownership" }

// DocumentOwnership requires the document's room to belong to the caller's department
type DocumentOwnership struct {
	DocumentID uuid.UUID
}

// Kind implements Requirement
func (DocumentOwnership) Kind() string { return "document_ownership" }

// StaffAssignment requires a staff caller to be assigned to RoomID
// Callers that are not staff satisfy it trivially
type StaffAssignment struct {
	RoomID uuid.UUID
}

// Kind implements Requirement
func (StaffAssignment) Kind() string { return "staff_assignment" }

// Actions understood by the permission policy
const (
	ActionDepartmentCreate = "department:create"
	ActionDepartmentUpdate = "department:update"
	ActionDepartmentDelete = "department:delete"
	ActionUserRead         = "user:read"
	ActionRoomCreate       = "room:create"
	ActionRoomRead         = "room:read"
	ActionRoomUpdate       = "room:update"
	ActionRoomDelete       = "room:delete"
	ActionLockerCreate     = "locker:create"
	ActionLockerRead       = "locker:read"
	ActionLockerUpdate     = "locker:update"
	ActionLockerDelete     = "locker:delete"
	ActionFolderCreate     = "folder:create"
	ActionFolderRead       = "folder:read"
	ActionFolderUpdate     = "folder:update"
	ActionFolderDelete     = "folder:delete"
	ActionDocumentCreate   = "document:create"
	ActionDocumentRead     = "document:read"
	ActionDocumentUpdate   = "document:update"
	ActionDocumentDelete   = "document:delete"
)
