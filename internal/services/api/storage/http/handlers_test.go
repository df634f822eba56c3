package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recordkeeper/internal/core/mediator"
	phttp "recordkeeper/internal/platform/net/http"
	"recordkeeper/internal/services/api/storage/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newMux(reg *mediator.Registry) *chi.Mux {
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/storage", func(rr phttp.Router) { Register(rr, mediator.New(reg)) })
	return mux
}

func TestHandlers_Lockers(t *testing.T) {
	var (
		added   domain.AddLocker
		removed domain.RemoveLocker
	)
	reg := mediator.NewRegistry()
	mediator.Handle(reg, func(_ context.Context, c domain.AddLocker) (domain.Locker, error) {
		added = c
		return domain.Locker{ID: uuid.New(), RoomID: c.RoomID}, nil
	})
	mediator.Handle(reg, func(_ context.Context, c domain.RemoveLocker) (struct{}, error) {
		removed = c
		return struct{}{}, nil
	})
	mux := newMux(reg)

	room := uuid.New()
	rec := httptest.NewRecorder()
	body := `{"room_id":"` + room.String() + `","name":"L-1","capacity":3}`
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/storage/lockers", strings.NewReader(body)))
	if rec.Code != stdhttp.StatusCreated || added.RoomID != room || added.Capacity != 3 {
		t.Fatalf("add: %d %+v %s", rec.Code, added, rec.Body.String())
	}

	id := uuid.New()
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodDelete, "/storage/lockers/"+id.String(), nil))
	if rec.Code != stdhttp.StatusNoContent || removed.LockerID != id {
		t.Fatalf("remove: %d %+v", rec.Code, removed)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodDelete, "/storage/lockers/nope", nil))
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad id = %d", rec.Code)
	}
}

func TestHandlers_ListFolders(t *testing.T) {
	var got domain.GetAllFolders
	reg := mediator.NewRegistry()
	mediator.Handle(reg, func(_ context.Context, q domain.GetAllFolders) ([]domain.Folder, error) {
		got = q
		return []domain.Folder{}, nil
	})
	mux := newMux(reg)

	room, locker := uuid.New(), uuid.New()
	rec := httptest.NewRecorder()
	url := "/storage/folders?room_id=" + room.String() + "&locker_id=" + locker.String()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, url, nil))
	if rec.Code != stdhttp.StatusOK || got.RoomID == nil || *got.RoomID != room || got.LockerID == nil || *got.LockerID != locker {
		t.Fatalf("list: %d %+v", rec.Code, got)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/storage/folders", nil))
	if rec.Code != stdhttp.StatusOK || got.RoomID != nil || got.LockerID != nil {
		t.Fatalf("unfiltered: %d %+v", rec.Code, got)
	}
}
