// Package domain holds document DTOs and request values
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a filed record; its container chain is denormalised for reads
type Document struct {
	ID           uuid.UUID `json:"id"`
	FolderID     uuid.UUID `json:"folder_id"`
	LockerID     uuid.UUID `json:"locker_id"`
	RoomID       uuid.UUID `json:"room_id"`
	Title        string    `json:"title"         example:"Lease agreement 2024"`
	Description  string    `json:"description"`
	DocumentType string    `json:"document_type" example:"contract"`
	ImporterID   uuid.UUID `json:"importer_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FolderSpace is the capacity and document count of a folder
type FolderSpace struct {
	Capacity  int
	Documents int
}

// DocumentFilter narrows document listings; nil fields match everything
// Search is matched against the canonical title key
type DocumentFilter struct {
	DepartmentID *uuid.UUID
	RoomID       *uuid.UUID
	LockerID     *uuid.UUID
	FolderID     *uuid.UUID
	Search       string
}

// ImportDocument files a new document; the caller becomes its importer
type ImportDocument struct {
	FolderID     uuid.UUID `json:"folder_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DocumentType string    `json:"document_type"`
}

// UpdateDocument changes a document's metadata
type UpdateDocument struct {
	DocumentID   uuid.UUID `json:"-"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DocumentType string    `json:"document_type"`
}

// DeleteDocument removes a document from its folder
type DeleteDocument struct {
	DocumentID uuid.UUID
}

// GetDocumentByID reads one document
type GetDocumentByID struct {
	DocumentID uuid.UUID
}

// GetAllDocuments lists documents, optionally under a container chain and
// matching a title search
type GetAllDocuments struct {
	RoomID   *uuid.UUID
	LockerID *uuid.UUID
	FolderID *uuid.UUID
	Search   *string
}
