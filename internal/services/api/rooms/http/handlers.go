// Package http provides http transport for rooms
package http

import (
	stdhttp "net/http"

	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/services/api/rooms/domain"
)

// Register mounts the router
func Register(r httpkit.Router, bus *mediator.Mediator) {
	h := &handlers{bus: bus}
	httpkit.PostJSON[domain.AddRoom](r, "/", h.add)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{roomID}", h.get)
	httpkit.PutJSON[domain.UpdateRoom](r, "/{roomID}", h.update)
	httpkit.Delete(r, "/{roomID}", h.remove)
}

type handlers struct{ bus *mediator.Mediator }

// swagger:route POST /rooms Rooms addRoom
// @Summary Add room
// @Tags rooms
// @Accept json
// @Produce json
// @Param payload body domain.AddRoom true "Room"
// @Success 201 {object} domain.Room "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Router /rooms [post]
func (h *handlers) add(r *stdhttp.Request, in domain.AddRoom) (any, error) {
	room, err := mediator.Send[domain.Room](r.Context(), h.bus, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(room), nil
}

// swagger:route GET /rooms Rooms listRooms
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Param department_id query string false "Department id"
// @Success 200 {array} domain.Room "ok"
// @Router /rooms [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	dept, err := httpkit.QueryUUID(r, "department_id")
	if err != nil {
		return nil, err
	}
	return mediator.Send[[]domain.Room](r.Context(), h.bus, domain.GetAllRooms{DepartmentID: dept})
}

// swagger:route GET /rooms/{roomID} Rooms getRoom
// @Summary Get room
// @Tags rooms
// @Produce json
// @Param roomID path string true "Room id"
// @Success 200 {object} domain.Room "ok"
// @Failure 403 {object} httpkit.Envelope "not accessible"
// @Router /rooms/{roomID} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "roomID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[domain.Room](r.Context(), h.bus, domain.GetRoomByID{RoomID: id})
}

// swagger:route PUT /rooms/{roomID} Rooms updateRoom
// @Summary Update room
// @Tags rooms
// @Accept json
// @Produce json
// @Param roomID path string true "Room id"
// @Param payload body domain.UpdateRoom true "Room"
// @Success 200 {object} domain.Room "ok"
// @Failure 409 {object} httpkit.Envelope "capacity below lockers"
// @Router /rooms/{roomID} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateRoom) (any, error) {
	id, err := httpkit.PathUUID(r, "roomID")
	if err != nil {
		return nil, err
	}
	in.RoomID = id
	return mediator.Send[domain.Room](r.Context(), h.bus, in)
}

// swagger:route DELETE /rooms/{roomID} Rooms removeRoom
// @Summary Remove an empty room
// @Tags rooms
// @Param roomID path string true "Room id"
// @Success 204 "removed"
// @Failure 409 {object} httpkit.Envelope "room not empty"
// @Router /rooms/{roomID} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "roomID")
	if err != nil {
		return nil, err
	}
	if _, err := mediator.Send[struct{}](r.Context(), h.bus, domain.RemoveRoom{RoomID: id}); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
