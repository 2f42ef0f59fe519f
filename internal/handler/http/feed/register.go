// Package feed serves the live headline endpoints. Articles returned here are
// transient and never stored.
package feed

import (
	"net/http"

	feedUC "newsdesk/internal/usecase/feed"
)

// Register mounts the headline routes.
func Register(mux *http.ServeMux, svc *feedUC.Service) {
	mux.Handle("GET /api/all-news", AllNewsHandler{Svc: svc})
	mux.Handle("GET /api/top-headlines", TopHeadlinesHandler{Svc: svc})
	mux.Handle("GET /api/country/{iso}", CountryHandler{Svc: svc})
}
