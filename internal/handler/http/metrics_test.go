package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"newsdesk/internal/handler/http/pathutil"
)

func TestRouteLabel(t *testing.T) {
	withPattern := func(p string) *pathutil.Route {
		ctx, r := pathutil.Capture(t.Context())
		pathutil.Record(ctx, p)
		return r
	}

	tests := []struct {
		name   string
		route  *pathutil.Route
		path   string
		status int
		want   string
	}{
		{"recorded pattern", withPattern("DELETE /api/saved-articles/{id}"), "/api/saved-articles/9", 200, "/api/saved-articles/:id"},
		{"no pattern falls back to normalization", &pathutil.Route{}, "/api/country/fr", 429, "/api/country/:iso"},
		{"unmatched 404", &pathutil.Route{}, "/wp-login.php", 404, unmatchedRoute},
		{"unmatched 405", &pathutil.Route{}, "/api/all-news", 405, unmatchedRoute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routeLabel(tt.route, tt.path, tt.status))
		})
	}
}

func TestMetricsMiddleware_RecordsRouteTemplate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/saved-articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := MetricsMiddleware(Router(mux))

	counter := httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/saved-articles/:id", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "6553f1a2b4c8d9e0f1a2b3c4"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/saved-articles/"+id, nil))
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsInFlight)
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsHandler(t *testing.T) {
	httpRequestsTotal.WithLabelValues(http.MethodGet, "/live", "200").Inc()

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "http_requests_total"))
}
