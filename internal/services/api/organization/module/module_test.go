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

func TestNew_RequiresBus(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{PG: &storetest.InlineTx{}}) })
}

func TestModule_RegistersAndMounts(t *testing.T) {
	reg := mediator.NewRegistry()
	m := New(modkit.Deps{PG: &storetest.InlineTx{}, Bus: mediator.New(reg)})

	if m.Name() != "organization" {
		t.Fatalf("name = %q", m.Name())
	}
	reg.Install(modkit.MustPortsOf[mediator.Registrar](m))
	for _, want := range []string{"domain.CreateDepartment", "domain.AssignStaff", "domain.GetAllUsers"} {
		if !slices.Contains(reg.Requests(), want) {
			t.Fatalf("missing handler for %s in %v", want, reg.Requests())
		}
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	var routes []string
	_ = chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	for _, want := range []string{
		"PUT /organization/departments/{departmentID}",
		"DELETE /organization/staff/{userID}",
		"GET /organization/rooms/{roomID}/staff",
	} {
		if !slices.Contains(routes, want) {
			t.Fatalf("route %q not mounted; have %v", want, routes)
		}
	}
}
