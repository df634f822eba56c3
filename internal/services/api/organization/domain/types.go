// Package domain holds organization DTOs and request values
package domain

import (
	"time"

	"recordkeeper/internal/core/actor"

	"github.com/google/uuid"
)

// Department is a unit owning rooms and users
type Department struct {
	ID        uuid.UUID `json:"id"         example:"0b6f1c2e-3e8d-4c47-9d6e-2a7f1b3c4d5e"`
	Name      string    `json:"name"       example:"Finance"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an account known to the records system
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"                   example:"ana@example.org"`
	FullName     string     `json:"full_name"               example:"Ana Ruiz"`
	Role         actor.Role `json:"role"                    example:"staff"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Staff is a staff user assigned to one room
type Staff struct {
	UserID     uuid.UUID `json:"user_id"`
	RoomID     uuid.UUID `json:"room_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	AssignedAt time.Time `json:"assigned_at"`
}

// UserFilter narrows user listings
type UserFilter struct {
	DepartmentID *uuid.UUID
	Role         *actor.Role
}
