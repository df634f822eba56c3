package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recordkeeper/internal/core/mediator"
	phttp "recordkeeper/internal/platform/net/http"
	"recordkeeper/internal/services/api/documents/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestHandlers(t *testing.T) {
	var (
		imported domain.ImportDocument
		listed   domain.GetAllDocuments
	)
	reg := mediator.NewRegistry()
	mediator.Handle(reg, func(_ context.Context, c domain.ImportDocument) (domain.Document, error) {
		imported = c
		return domain.Document{ID: uuid.New(), FolderID: c.FolderID, Title: c.Title}, nil
	})
	mediator.Handle(reg, func(_ context.Context, q domain.GetAllDocuments) ([]domain.Document, error) {
		listed = q
		return []domain.Document{}, nil
	})
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/documents", func(rr phttp.Router) { Register(rr, mediator.New(reg)) })

	folder := uuid.New()
	body := `{"folder_id":"` + folder.String() + `","title":"Lease","document_type":"contract"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/documents", strings.NewReader(body)))
	if rec.Code != stdhttp.StatusCreated || imported.FolderID != folder || imported.DocumentType != "contract" {
		t.Fatalf("import: %d %+v", rec.Code, imported)
	}
	var env struct {
		Data domain.Document `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.Data.Title != "Lease" {
		t.Fatalf("body %s: %v", rec.Body.String(), err)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/documents?search=lease&folder_id="+folder.String(), nil))
	if rec.Code != stdhttp.StatusOK || listed.Search == nil || *listed.Search != "lease" || listed.FolderID == nil || listed.RoomID != nil {
		t.Fatalf("list: %d %+v", rec.Code, listed)
	}
}
