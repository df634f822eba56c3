// Package domain holds locker and folder DTOs and request values
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Locker sits in a room and holds folders
type Locker struct {
	ID              uuid.UUID `json:"id"`
	RoomID          uuid.UUID `json:"room_id"`
	Name            string    `json:"name"              example:"L-04"`
	Description     string    `json:"description"`
	Capacity        int       `json:"capacity"          example:"20"`
	NumberOfFolders int       `json:"number_of_folders" example:"6"`
	CreatedAt       time.Time `json:"created_at"`
}

// Folder sits in a locker and holds documents
type Folder struct {
	ID                uuid.UUID `json:"id"`
	LockerID          uuid.UUID `json:"locker_id"`
	RoomID            uuid.UUID `json:"room_id"`
	Name              string    `json:"name"                example:"Invoices 2024"`
	Description       string    `json:"description"`
	Capacity          int       `json:"capacity"            example:"200"`
	NumberOfDocuments int       `json:"number_of_documents" example:"41"`
	CreatedAt         time.Time `json:"created_at"`
}

// Counters is the capacity and child count of a container row
type Counters struct {
	Capacity int
	Count    int
}

// Full reports whether one more child would exceed capacity
func (c Counters) Full() bool { return c.Count >= c.Capacity }

// FolderFilter narrows folder listings; nil fields match everything
type FolderFilter struct {
	DepartmentID *uuid.UUID
	RoomID       *uuid.UUID
	LockerID     *uuid.UUID
}
