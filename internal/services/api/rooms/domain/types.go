// Package domain holds room DTOs and request values
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is a physical room owned by a department; it holds lockers
type Room struct {
	ID              uuid.UUID `json:"id"`
	DepartmentID    uuid.UUID `json:"department_id"`
	Name            string    `json:"name"              example:"Archive B"`
	Description     string    `json:"description"       example:"Basement, north wing"`
	Capacity        int       `json:"capacity"          example:"12"`
	NumberOfLockers int       `json:"number_of_lockers" example:"3"`
	CreatedAt       time.Time `json:"created_at"`
}

// AddRoom creates a room in a department
type AddRoom struct {
	DepartmentID uuid.UUID `json:"department_id"`
	Name         string    `json:"name"        example:"Archive B"`
	Description  string    `json:"description" example:"Basement, north wing"`
	Capacity     int       `json:"capacity"    example:"12"`
}

// UpdateRoom changes a room's label and capacity
type UpdateRoom struct {
	RoomID      uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
}

// RemoveRoom deletes an empty room
type RemoveRoom struct {
	RoomID uuid.UUID
}

// GetRoomByID reads one room
type GetRoomByID struct {
	RoomID uuid.UUID
}

// GetAllRooms lists rooms, optionally for one department
type GetAllRooms struct {
	DepartmentID *uuid.UUID
}
