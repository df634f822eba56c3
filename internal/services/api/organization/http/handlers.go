// Package http provides http transport for departments, users and staff
package http

import (
	stdhttp "net/http"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/services/api/organization/domain"
)

// Register mounts the router
func Register(r httpkit.Router, bus *mediator.Mediator) {
	h := &handlers{bus: bus}

	httpkit.PostJSON[domain.CreateDepartment](r, "/departments", h.createDepartment)
	httpkit.Get(r, "/departments", h.listDepartments)
	httpkit.Get(r, "/departments/{departmentID}", h.getDepartment)
	httpkit.PutJSON[domain.UpdateDepartment](r, "/departments/{departmentID}", h.updateDepartment)
	httpkit.Delete(r, "/departments/{departmentID}", h.deleteDepartment)

	httpkit.PostJSON[domain.CreateUser](r, "/users", h.createUser)
	httpkit.Get(r, "/users", h.listUsers)
	httpkit.Get(r, "/users/{userID}", h.getUser)

	httpkit.PutJSON[domain.AssignStaff](r, "/rooms/{roomID}/staff", h.assignStaff)
	httpkit.Get(r, "/rooms/{roomID}/staff", h.listStaff)
	httpkit.Delete(r, "/staff/{userID}", h.unassignStaff)
}

type handlers struct{ bus *mediator.Mediator }

// swagger:route POST /organization/departments Organization createDepartment
// @Summary Create department
// @Tags organization
// @Accept json
// @Produce json
// @Param payload body domain.CreateDepartment true "Department"
// @Success 201 {object} domain.Department "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Failure 409 {object} httpkit.Envelope "name taken"
// @Router /organization/departments [post]
func (h *handlers) createDepartment(r *stdhttp.Request, in domain.CreateDepartment) (any, error) {
	d, err := mediator.Send[domain.Department](r.Context(), h.bus, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(d), nil
}

// swagger:route GET /organization/departments Organization listDepartments
// @Summary List departments
// @Tags organization
// @Produce json
// @Success 200 {array} domain.Department "ok"
// @Router /organization/departments [get]
func (h *handlers) listDepartments(r *stdhttp.Request) (any, error) {
	return mediator.Send[[]domain.Department](r.Context(), h.bus, domain.GetAllDepartments{})
}

// swagger:route GET /organization/departments/{departmentID} Organization getDepartment
// @Summary Get department
// @Tags organization
// @Produce json
// @Param departmentID path string true "Department id"
// @Success 200 {object} domain.Department "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /organization/departments/{departmentID} [get]
func (h *handlers) getDepartment(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "departmentID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[domain.Department](r.Context(), h.bus, domain.GetDepartmentByID{DepartmentID: id})
}

// swagger:route PUT /organization/departments/{departmentID} Organization updateDepartment
// @Summary Rename department
// @Tags organization
// @Accept json
// @Produce json
// @Param departmentID path string true "Department id"
// @Param payload body domain.UpdateDepartment true "Department"
// @Success 200 {object} domain.Department "ok"
// @Failure 403 {object} httpkit.Envelope "forbidden"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /organization/departments/{departmentID} [put]
func (h *handlers) updateDepartment(r *stdhttp.Request, in domain.UpdateDepartment) (any, error) {
	id, err := httpkit.PathUUID(r, "departmentID")
	if err != nil {
		return nil, err
	}
	in.DepartmentID = id
	return mediator.Send[domain.Department](r.Context(), h.bus, in)
}

// swagger:route DELETE /organization/departments/{departmentID} Organization deleteDepartment
// @Summary Delete an empty department
// @Tags organization
// @Param departmentID path string true "Department id"
// @Success 204 "deleted"
// @Failure 409 {object} httpkit.Envelope "department in use"
// @Router /organization/departments/{departmentID} [delete]
func (h *handlers) deleteDepartment(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "departmentID")
	if err != nil {
		return nil, err
	}
	if _, err := mediator.Send[struct{}](r.Context(), h.bus, domain.DeleteDepartment{DepartmentID: id}); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route POST /organization/users Organization createUser
// @Summary Create user
// @Tags organization
// @Accept json
// @Produce json
// @Param payload body domain.CreateUser true "User"
// @Success 201 {object} domain.User "created"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /organization/users [post]
func (h *handlers) createUser(r *stdhttp.Request, in domain.CreateUser) (any, error) {
	u, err := mediator.Send[domain.User](r.Context(), h.bus, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(u), nil
}

// swagger:route GET /organization/users Organization listUsers
// @Summary List users
// @Tags organization
// @Produce json
// @Param department_id query string false "Department id"
// @Param role query string false "Role"
// @Success 200 {array} domain.User "ok"
// @Router /organization/users [get]
func (h *handlers) listUsers(r *stdhttp.Request) (any, error) {
	dept, err := httpkit.QueryUUID(r, "department_id")
	if err != nil {
		return nil, err
	}
	q := domain.GetAllUsers{DepartmentID: dept}
	if role := httpkit.QueryString(r, "role"); role != nil {
		rl := actor.Role(*role)
		q.Role = &rl
	}
	return mediator.Send[[]domain.User](r.Context(), h.bus, q)
}

// swagger:route GET /organization/users/{userID} Organization getUser
// @Summary Get user
// @Tags organization
// @Produce json
// @Param userID path string true "User id"
// @Success 200 {object} domain.User "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /organization/users/{userID} [get]
func (h *handlers) getUser(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "userID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[domain.User](r.Context(), h.bus, domain.GetUserByID{UserID: id})
}

// swagger:route PUT /organization/rooms/{roomID}/staff Organization assignStaff
// @Summary Assign a staff user to a room
// @Tags organization
// @Accept json
// @Produce json
// @Param roomID path string true "Room id"
// @Param payload body domain.AssignStaff true "Assignment"
// @Success 200 {object} domain.Staff "ok"
// @Failure 409 {object} httpkit.Envelope "user cannot be assigned"
// @Router /organization/rooms/{roomID}/staff [put]
func (h *handlers) assignStaff(r *stdhttp.Request, in domain.AssignStaff) (any, error) {
	id, err := httpkit.PathUUID(r, "roomID")
	if err != nil {
		return nil, err
	}
	in.RoomID = id
	return mediator.Send[domain.Staff](r.Context(), h.bus, in)
}

// swagger:route GET /organization/rooms/{roomID}/staff Organization listStaff
// @Summary List staff assigned to a room
// @Tags organization
// @Produce json
// @Param roomID path string true "Room id"
// @Success 200 {array} domain.Staff "ok"
// @Router /organization/rooms/{roomID}/staff [get]
func (h *handlers) listStaff(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "roomID")
	if err != nil {
		return nil, err
	}
	return mediator.Send[[]domain.Staff](r.Context(), h.bus, domain.GetStaffByRoom{RoomID: id})
}

// swagger:route DELETE /organization/staff/{userID} Organization unassignStaff
// @Summary Clear a staff assignment
// @Tags organization
// @Param userID path string true "User id"
// @Success 204 "unassigned"
// @Failure 404 {object} httpkit.Envelope "not assigned"
// @Router /organization/staff/{userID} [delete]
func (h *handlers) unassignStaff(r *stdhttp.Request) (any, error) {
	id, err := httpkit.PathUUID(r, "userID")
	if err != nil {
		return nil, err
	}
	if _, err := mediator.Send[struct{}](r.Context(), h.bus, domain.UnassignStaff{UserID: id}); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
