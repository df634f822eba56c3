package module

import (
	"net/http"
	"slices"
	"testing"

	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit"
	phttp "recordkeeper/internal/platform/net/http"
	"recordkeeper/internal/platform/store/storetest"
	"recordkeeper/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestNew(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{PG: &storetest.InlineTx{}}) })

	reg := mediator.NewRegistry()
	m := New(modkit.Deps{PG: &storetest.InlineTx{}, Bus: mediator.New(reg)}, modkit.WithPrefix("/v2/rooms"))
	if m.Name() != "rooms" {
		t.Fatalf("name = %s", m.Name())
	}
	reg.Install(modkit.MustPortsOf[mediator.Registrar](m))
	want := []string{"domain.AddRoom", "domain.GetAllRooms", "domain.GetRoomByID", "domain.RemoveRoom", "domain.UpdateRoom"}
	if got := reg.Requests(); !slices.Equal(got, want) {
		t.Fatalf("requests = %v", got)
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	var routes []string
	_ = chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	if !slices.Contains(routes, "PUT /v2/rooms/{roomID}") {
		t.Fatalf("routes = %v", routes)
	}
}
