package domain

import "github.com/google/uuid"

// AddLocker places a locker in a room
type AddLocker struct {
	RoomID      uuid.UUID `json:"room_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
}

// UpdateLocker changes a locker's label and capacity
type UpdateLocker struct {
	LockerID    uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
}

// RemoveLocker deletes an empty locker
type RemoveLocker struct {
	LockerID uuid.UUID
}

// GetLockerByID reads one locker
type GetLockerByID struct {
	LockerID uuid.UUID
}

// GetAllLockers lists the lockers of a room
type GetAllLockers struct {
	RoomID uuid.UUID
}

// AddFolder places a folder in a locker
type AddFolder struct {
	LockerID    uuid.UUID `json:"locker_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
}

// UpdateFolder changes a folder's label and capacity
type UpdateFolder struct {
	FolderID    uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
}

// RemoveFolder deletes an empty folder
type RemoveFolder struct {
	FolderID uuid.UUID
}

// GetFolderByID reads one folder
type GetFolderByID struct {
	FolderID uuid.UUID
}

// GetAllFolders lists folders; a locker may only be given with its room
type GetAllFolders struct {
	RoomID   *uuid.UUID
	LockerID *uuid.UUID
}
