package service

import (
	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/core/rules"
	"recordkeeper/internal/services/api/documents/domain"

	"github.com/google/uuid"
)

func search(q domain.GetAllDocuments) string {
	if q.Search == nil {
		return ""
	}
	return *q.Search
}

var importDocumentRules = rules.For[domain.ImportDocument]().
	Field("folder_id").
	Must(rules.Present(func(c domain.ImportDocument) uuid.UUID { return c.FolderID }), "FolderId is required").
	Field("title").Stop().
	Must(rules.NotBlank(func(c domain.ImportDocument) string { return c.Title }), "Title is required").
	Must(rules.MaxLen(func(c domain.ImportDocument) string { return c.Title }, rules.MaxTitle), "Title must be at most 200 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.ImportDocument) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("document_type").Stop().
	Must(rules.NotBlank(func(c domain.ImportDocument) string { return c.DocumentType }), "DocumentType is required").
	Must(rules.MaxLen(func(c domain.ImportDocument) string { return c.DocumentType }, rules.MaxName), "DocumentType must be at most 64 characters").
	Set()

var updateDocumentRules = rules.For[domain.UpdateDocument]().
	Field("document_id").
	Must(rules.Present(func(c domain.UpdateDocument) uuid.UUID { return c.DocumentID }), "DocumentId is required").
	Field("title").Stop().
	Must(rules.NotBlank(func(c domain.UpdateDocument) string { return c.Title }), "Title is required").
	Must(rules.MaxLen(func(c domain.UpdateDocument) string { return c.Title }, rules.MaxTitle), "Title must be at most 200 characters").
	Field("description").
	Must(rules.MaxLen(func(c domain.UpdateDocument) string { return c.Description }, rules.MaxDescription), "Description must be at most 512 characters").
	Field("document_type").Stop().
	Must(rules.NotBlank(func(c domain.UpdateDocument) string { return c.DocumentType }), "DocumentType is required").
	Must(rules.MaxLen(func(c domain.UpdateDocument) string { return c.DocumentType }, rules.MaxName), "DocumentType must be at most 64 characters").
	Set()

var deleteDocumentRules = rules.For[domain.DeleteDocument]().
	Field("document_id").
	Must(rules.Present(func(c domain.DeleteDocument) uuid.UUID { return c.DocumentID }), "DocumentId is required").
	Set()

var getDocumentRules = rules.For[domain.GetDocumentByID]().
	Field("document_id").
	Must(rules.Present(func(q domain.GetDocumentByID) uuid.UUID { return q.DocumentID }), "DocumentId is required").
	Set()

// folder needs locker, locker needs room; each chain stops at its first failure
var getAllDocumentsRules = rules.For[domain.GetAllDocuments]().
	Field("room_id").
	Must(rules.OptionalPresent(func(q domain.GetAllDocuments) *uuid.UUID { return q.RoomID }), "RoomId must not be empty").
	Field("locker_id").Stop().
	Must(rules.OptionalPresent(func(q domain.GetAllDocuments) *uuid.UUID { return q.LockerID }), "LockerId must not be empty").
	Must(rules.Requires(
		func(q domain.GetAllDocuments) *uuid.UUID { return q.LockerID },
		func(q domain.GetAllDocuments) *uuid.UUID { return q.RoomID },
	), "LockerId can only be set together with RoomId").
	Field("folder_id").Stop().
	Must(rules.OptionalPresent(func(q domain.GetAllDocuments) *uuid.UUID { return q.FolderID }), "FolderId must not be empty").
	Must(rules.Requires(
		func(q domain.GetAllDocuments) *uuid.UUID { return q.FolderID },
		func(q domain.GetAllDocuments) *uuid.UUID { return q.LockerID },
	), "FolderId can only be set together with LockerId").
	Field("search").
	Must(rules.MaxLen(search, rules.MaxTitle), "Search must be at most 200 characters").
	Set()

func authorizeImportDocument(c domain.ImportDocument) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionDocumentCreate},
		authz.FolderOwnership{FolderID: c.FolderID},
	}
}

func authorizeUpdateDocument(c domain.UpdateDocument) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionDocumentUpdate},
		authz.DocumentOwnership{DocumentID: c.DocumentID},
	}
}

func authorizeDeleteDocument(c domain.DeleteDocument) []authz.Requirement {
	return []authz.Requirement{
		authz.Permission{Action: authz.ActionDocumentDelete},
		authz.DocumentOwnership{DocumentID: c.DocumentID},
	}
}

func authorizeGetDocument(q domain.GetDocumentByID) []authz.Requirement {
	return []authz.Requirement{authz.DocumentOwnership{DocumentID: q.DocumentID}}
}

func authorizeGetAllDocuments(q domain.GetAllDocuments) []authz.Requirement {
	out := []authz.Requirement{authz.Permission{Action: authz.ActionDocumentRead}}
	switch {
	case q.FolderID != nil:
		out = append(out, authz.FolderOwnership{FolderID: *q.FolderID})
	case q.LockerID != nil:
		out = append(out, authz.LockerOwnership{LockerID: *q.LockerID})
	case q.RoomID != nil:
		out = append(out, authz.RoomOwnership{RoomID: *q.RoomID})
	}
	return out
}
