// Package bookmark serves the saved-article endpoints.
package bookmark

import (
	"net/http"

	bmUC "newsdesk/internal/usecase/bookmark"
)

// Register mounts the bookmark routes. The seeding and wipe endpoints are
// mounted only when devEnabled is set.
func Register(mux *http.ServeMux, svc *bmUC.Service, devEnabled bool) {
	mux.Handle("POST /api/save-article", SaveHandler{Svc: svc})
	mux.Handle("GET /api/saved-articles", ListHandler{Svc: svc})
	mux.Handle("DELETE /api/saved-articles/{id}", DeleteHandler{Svc: svc})

	if !devEnabled {
		return
	}
	mux.Handle("POST /api/add-test-articles", SeedHandler{Svc: svc, Samples: bmUC.FixtureArticles, Message: msgFixturesAdded})
	mux.Handle("GET /add-test-articles", SeedHandler{Svc: svc, Samples: bmUC.SampleArticles, Reset: true, Message: msgSamplesAdded})
	mux.Handle("DELETE /api/delete-all-articles", DeleteAllHandler{Svc: svc})
}
