// Package http provides http transport for lockers and folders
package http

import (
	stdhttp "net/http"

	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/services/api/storage/domain"
)

// Register mounts the router
func Register(r httpkit.Router, bus *mediator.Mediator) {
	h := &handlers{bus: bus}

	httpkit.PostJSON[domain.AddLocker](r, "/lockers", h.addLocker)
	httpkit.Get(r, "/lockers", h.listLockers)
	httpkit.Get(r, "/lockers/{lockerID}", h.getLocker)
	httpkit.PutJSON[domain.UpdateLocker](r, "/lockers/{lockerID}", h.updateLocker)
	httpkit.Delete(r, "/lockers/{lockerID}", h.removeLocker)

	httpkit.PostJSON[domain.AddFolder](r, "/folders", h.addFolder)
	httpkit.Get(r, "/folders", h.listFolders)
	httpkit.Get(r, "/folders/{folderID}", h.getFolder)
	httpkit.PutJSON[domain.UpdateFolder](r, "/folders/{folderID}", h.updateFolder)
	httpkit.Delete(r, "/folders/{folderID}", h.removeFolder)
}

type handlers struct{ bus *mediator.Mediator }

// swagger:route POST /storage/lockers Storage addLocker
// @Summary Add locker to a room
// @Tags storage
// @Accept json
// @Produce json
// @Param payload body domain.AddLocker true "Locker"
// @Success 201 {object} domain.Locker "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Failure 409 {object} httpkit.Envelope "room full"
// @Router /storage/lockers [post]
func (h *handlers) addLocker(r *stdhttp.Request, in domain.AddLocker) (any, error) {
	l, err := mediator.Send[domain.Locker](r.Context(), h.bus, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(l), nil
}

// swagger:route GET /storage/lockers Storage listLockers
// @Summary List lockers of a room
// @Tags storage
// @Produce json
// @Param room_id query string true "Room id"
// @Success 200 {array} domain.Locker "ok"
// @Router /storage/lockers [get]
func (h *handlers) listLockers(r *stdhttp.Request) (any, error) {
	room, err := httpkit.QueryUUID(r, "room_id")
	if err != nil {
		return nil, err
	}
	q := domain.GetAllLockers{}
	if room != nil {
		q.RoomID = *room
	}
	return mediator.Send[[]domain.Locker](r.Context(), h.bus, q)
}

// @Summary Get locker
// @Tags storage
// @Produce json
// @Param lockerID path string true "Locker id"
// @Success 200 {object} domain.Locker "ok"
// @Router /storage/lockers/{lockerID} [get]
func (h *handlers) getLocker(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "lockerID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[domain.Locker](r.Context(), h.bus, domain.GetLockerByID{LockerID: id})
}

// @Summary Update locker
// @Tags storage
// @Accept json
// @Produce json
// @Param lockerID path string true "Locker id"
// @Param payload body domain.UpdateLocker true "Locker"
// @Success 200 {object} domain.Locker "ok"
// @Failure 409 {object} httpkit.Envelope "capacity below folders"
// @Router /storage/lockers/{lockerID} [put]
func (h *handlers) updateLocker(r *stdhttp.Request, in domain.UpdateLocker) (any, error) {
	id, err := httpkit.PathUUID(r, "lockerID")
	if err != nil {
		return nil, err
	}
	in.LockerID = id
	return mediator.Send[domain.Locker](r.Context(), h.bus, in)
}

// @Summary Remove an empty locker
// @Tags storage
// @Param lockerID path string true "Locker id"
// @Success 204 "removed"
// @Router /storage/lockers/{lockerID} [delete]
func (h *handlers) removeLocker(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "lockerID")
	if err != nil {
		return nil, err
	}
	return h.gone(r, domain.RemoveLocker{LockerID: id})
}

// swagger:route POST /storage/folders Storage addFolder
// @Summary Add folder to a locker
// @Tags storage
// @Accept json
// @Produce json
// @Param payload body domain.AddFolder true "Folder"
// @Success 201 {object} domain.Folder "created"
// @Failure 409 {object} httpkit.Envelope "locker full"
// @Router /storage/folders [post]
func (h *handlers) addFolder(r *stdhttp.Request, in domain.AddFolder) (any, error) {
	f, err := mediator.Send[domain.Folder](r.Context(), h.bus, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(f), nil
}

// swagger:route GET /storage/folders Storage listFolders
// @Summary List folders
// @Tags storage
// @Produce json
// @Param room_id query string false "Room id"
// @Param locker_id query string false "Locker id, requires room_id"
// @Success 200 {array} domain.Folder "ok"
// @Router /storage/folders [get]
func (h *handlers) listFolders(r *stdhttp.Request) (any, error) {
	room, err := httpkit.QueryUUID(r, "room_id")
	if err != nil {
		return nil, err
	}
	locker, err := httpkit.QueryUUID(r, "locker_id")
	if err != nil {
		return nil, err
	}
	return mediator.Send[[]domain.Folder](r.Context(), h.bus, domain.GetAllFolders{RoomID: room, LockerID: locker})
}

// @Summary Get folder
// @Tags storage
// @Produce json
// @Param folderID path string true "Folder id"
// @Success 200 {object} domain.Folder "ok"
// @Router /storage/folders/{folderID} [get]
func (h *handlers) getFolder(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "folderID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[domain.Folder](r.Context(), h.bus, domain.GetFolderByID{FolderID: id})
}

// @Summary Update folder
// @Tags storage
// @Accept json
// @Produce json
// @Param folderID path string true "Folder id"
// @Param payload body domain.UpdateFolder true "Folder"
// @Success 200 {object} domain.Folder "ok"
// @Router /storage/folders/{folderID} [put]
func (h *handlers) updateFolder(r *stdhttp.Request, in domain.UpdateFolder) (any, error) {
	id, err := httpkit.PathUUID(r, "folderID")
	if err != nil {
		return nil, err
	}
	in.FolderID = id
	return mediator.Send[domain.Folder](r.Context(), h.bus, in)
}

// @Summary Remove an empty folder
// @Tags storage
// @Param folderID path string true "Folder id"
// @Success 204 "removed"
// @Router /storage/folders/{folderID} [delete]
func (h *handlers) removeFolder(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "folderID")
	if err != nil {
		return nil, err
	}
	return h.gone(r, domain.RemoveFolder{FolderID: id})
}

func (h *handlers) gone(r *stdhttp.Request, req any) (any, error) {
	if _, err := mediator.Send[struct{}](r.Context(), h.bus, req); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
