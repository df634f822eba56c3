package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recordkeeper/internal/core/mediator"
	phttp "recordkeeper/internal/platform/net/http"
	"recordkeeper/internal/services/api/rooms/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestHandlers_TranslateRequests(t *testing.T) {
	var (
		gotUpdate domain.UpdateRoom
		gotList   domain.GetAllRooms
	)
	reg := mediator.NewRegistry()
	mediator.Handle(reg, func(_ context.Context, q domain.UpdateRoom) (domain.Room, error) {
		gotUpdate = q
		return domain.Room{ID: q.RoomID, Capacity: q.Capacity}, nil
	})
	mediator.Handle(reg, func(_ context.Context, q domain.GetAllRooms) ([]domain.Room, error) {
		gotList = q
		return []domain.Room{}, nil
	})

	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/rooms", func(rr phttp.Router) { Register(rr, mediator.New(reg)) })

	id := uuid.New()
	req := httptest.NewRequest(stdhttp.MethodPut, "/rooms/"+id.String(), strings.NewReader(`{"name":"A","description":"","capacity":7}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusOK || gotUpdate.RoomID != id || gotUpdate.Capacity != 7 {
		t.Fatalf("update: %d %+v %s", rec.Code, gotUpdate, rec.Body.String())
	}

	dept := uuid.New()
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/rooms?department_id="+dept.String(), nil))
	if rec.Code != stdhttp.StatusOK || gotList.DepartmentID == nil || *gotList.DepartmentID != dept {
		t.Fatalf("list: %d %+v", rec.Code, gotList)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/rooms?department_id=bogus", nil))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad query = %d", rec.Code)
	}
}
