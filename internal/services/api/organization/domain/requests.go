package domain

import (
	"recordkeeper/internal/core/actor"

	"github.com/google/uuid"
)

// CreateDepartment adds a department
type CreateDepartment struct {
	Name string `json:"name" example:"Finance"`
}

// UpdateDepartment renames a department
type UpdateDepartment struct {
	DepartmentID uuid.UUID `json:"-"`
	Name         string    `json:"name" example:"Finance and Audit"`
}

// DeleteDepartment removes an empty department
type DeleteDepartment struct {
	DepartmentID uuid.UUID
}

// GetDepartmentByID reads one department
type GetDepartmentByID struct {
	DepartmentID uuid.UUID
}

// GetAllDepartments lists departments by name
type GetAllDepartments struct{}

// CreateUser adds an account; non-admin accounts need a department
type CreateUser struct {
	Email        string     `json:"email"                   validate:"required,email,max=254"             example:"ana@example.org"`
	FullName     string     `json:"full_name"               validate:"required,notblank,max=128"          example:"Ana Ruiz"`
	Role         actor.Role `json:"role"                    validate:"required,oneof=admin staff employee" example:"employee"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
}

// GetUserByID reads one account
type GetUserByID struct {
	UserID uuid.UUID
}

// GetAllUsers lists accounts, optionally narrowed
type GetAllUsers struct {
	DepartmentID *uuid.UUID
	Role         *actor.Role
}

// AssignStaff places a staff user in a room, replacing any prior assignment
type AssignStaff struct {
	UserID uuid.UUID `json:"user_id"`
	RoomID uuid.UUID `json:"-"`
}

// UnassignStaff clears a staff user's room
type UnassignStaff struct {
	UserID uuid.UUID
}

// GetStaffByRoom lists staff assigned to a room
type GetStaffByRoom struct {
	RoomID uuid.UUID
}
