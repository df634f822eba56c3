package swaggerkit

import (
	"net/http"

	phttp "recordkeeper/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsRoot = "/api/docs"

// Mount serves the swagger UI under /api/docs when enabled
// the UI loads the skeleton built from DescribeRoutes
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(
		httpSwagger.InstanceName("recordkeeper"),
		httpSwagger.URL(docsRoot+"/doc.json"),
		httpSwagger.DocExpansion("none"),
	)
	r.Get(docsRoot, http.RedirectHandler(docsRoot+"/", http.StatusPermanentRedirect).ServeHTTP)
	r.Get(docsRoot+"/doc.json", serveDocJSON())
	r.Handle(docsRoot+"/*", ui)
}
