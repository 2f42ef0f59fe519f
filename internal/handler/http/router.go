package http

import (
	"net/http"
	"strings"

	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
)

var probeMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// Router wraps mux so /api requests that match no route still receive the
// JSON envelope: 405 with an Allow header when the path exists under another
// method, 404 otherwise. The matched pattern is recorded for metrics and tracing.
func Router(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pattern := mux.Handler(r)
		if pattern != "" {
			pathutil.Record(r.Context(), pattern)
			mux.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			mux.ServeHTTP(w, r)
			return
		}

		if allow := allowedMethods(mux, r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
			respond.Fail(w, http.StatusMethodNotAllowed, "Method not allowed", "")
			return
		}
		respond.Fail(w, http.StatusNotFound, "Route not found", "")
	})
}

func allowedMethods(mux *http.ServeMux, r *http.Request) []string {
	var allow []string
	for _, m := range probeMethods {
		if m == r.Method {
			continue
		}
		probe := r.Clone(r.Context())
		probe.Method = m
		if _, p := mux.Handler(probe); p != "" {
			allow = append(allow, m)
		}
	}
	return allow
}
