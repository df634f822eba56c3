package module

import (
	"slices"
	"testing"

	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/platform/store/storetest"
)

func TestModule_Ports(t *testing.T) {
	reg := mediator.NewRegistry()
	m := New(modkit.Deps{PG: &storetest.InlineTx{}, Bus: mediator.New(reg)})
	reg.Install(modkit.MustPortsOf[mediator.Registrar](m))

	want := []string{
		"domain.DeleteDocument",
		"domain.GetAllDocuments",
		"domain.GetDocumentByID",
		"domain.ImportDocument",
		"domain.UpdateDocument",
	}
	if got := reg.Requests(); !slices.Equal(got, want) {
		t.Fatalf("requests = %v", got)
	}
}
