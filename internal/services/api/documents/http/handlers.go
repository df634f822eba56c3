// Package http provides http transport for documents
package http

import (
	stdhttp "net/http"

	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/services/api/documents/domain"
)

// Register mounts the router
func Register(r httpkit.Router, bus *mediator.Mediator) {
	h := &handlers{bus: bus}
	httpkit.PostJSON[domain.ImportDocument](r, "/", h.importDocument)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{documentID}", h.get)
	httpkit.PutJSON[domain.UpdateDocument](r, "/{documentID}", h.update)
	httpkit.Delete(r, "/{documentID}", h.remove)
}

type handlers struct{ bus *mediator.Mediator }

// swagger:route POST /documents Documents importDocument
// @Summary Import a document into a folder
// @Description The authenticated caller is recorded as importer
// @Tags documents
// @Accept json
// @Produce json
// @Param payload body domain.ImportDocument true "Document"
// @Success 201 {object} domain.Document "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Failure 409 {object} httpkit.Envelope "folder full or title taken"
// @Router /documents [post]
func (h *handlers) importDocument(r *stdhttp.Request, in domain.ImportDocument) (any, error) {
	d, err := mediator.Send[domain.Document](r.Context(), h.bus, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(d), nil
}

// swagger:route GET /documents Documents listDocuments
// @Summary List documents
// @Tags documents
// @Produce json
// @Param room_id query string false "Room id"
// @Param locker_id query string false "Locker id, requires room_id"
// @Param folder_id query string false "Folder id, requires locker_id"
// @Param search query string false "Title search"
// @Success 200 {array} domain.Document "ok"
// @Router /documents [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	var (
		q   domain.GetAllDocuments
		err error
	)
	if q.RoomID, err = httpkit.QueryUUID(r, "room_id"); err != nil {
		return nil, err
	}
	if q.LockerID, err = httpkit.QueryUUID(r, "locker_id"); err != nil {
		return nil, err
	}
	if q.FolderID, err = httpkit.QueryUUID(r, "folder_id"); err != nil {
		return nil, err
	}
	q.Search = httpkit.QueryString(r, "search")
	return mediator.Send[[]domain.Document](r.Context(), h.bus, q)
}

// swagger:route GET /documents/{documentID} Documents getDocument
// @Summary Get document
// @Tags documents
// @Produce json
// @Param documentID path string true "Document id"
// @Success 200 {object} domain.Document "ok"
// @Failure 403 {object} httpkit.Envelope "not accessible"
// @Router /documents/{documentID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "documentID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[domain.Document](r.Context(), h.bus, domain.GetDocumentByID{DocumentID: id})
}

// swagger:route PUT /documents/{documentID} Documents updateDocument
// @Summary Update document metadata
// @Tags documents
// @Accept json
// @Produce json
// @Param documentID path string true "Document id"
// @Param payload body domain.UpdateDocument true "Document"
// @Success 200 {object} domain.Document "ok"
// @Router /documents/{documentID} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateDocument) (any, error) {
	id, err := httpkit.PathUUID(r, "documentID")
	if err != nil {
		return nil, err
	}
	in.DocumentID = id
	return mediator.Send[domain.Document](r.Context(), h.bus, in)
}

// swagger:route DELETE /documents/{documentID} Documents deleteDocument
// @Summary Delete document
// @Tags documents
// @Param documentID path string true "Document id"
// @Success 204 "deleted"
// @Router /documents/{documentID} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "documentID")
	if err != nil {
		return nil, err
	}
	if _, err := mediator.Send[struct{}](r.Context(), h.bus, domain.DeleteDocument{DocumentID: id}); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
