package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{"with request ID", WithRequestID(context.Background(), "test-id-123"), "test-id-123"},
		{"without request ID", context.Background(), ""},
		{"wrong type in context", context.WithValue(context.Background(), RequestIDKey, 12345), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromContext(tt.ctx))
		})
	}
}

func serve(req *http.Request) (ctxID, headerID string, rec *httptest.ResponseRecorder) {
	rec = httptest.NewRecorder()
	Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = FromContext(r.Context())
		headerID = r.Header.Get(RequestIDHeader)
	})).ServeHTTP(rec, req)
	return ctxID, headerID, rec
}

func TestMiddleware_PropagatesIncomingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/saved-articles", nil)
	req.Header.Set(RequestIDHeader, "lb-7f3a.2:retry_1")

	ctxID, headerID, rec := serve(req)

	assert.Equal(t, "lb-7f3a.2:retry_1", ctxID)
	assert.Equal(t, ctxID, headerID)
	assert.Equal(t, ctxID, rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_GeneratesID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"missing", ""},
		{"too long", strings.Repeat("a", maxIDLength+1)},
		{"contains spaces", "abc def"},
		{"contains newline", "abc\ndef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}

			ctxID, headerID, rec := serve(req)

			_, err := uuid.Parse(ctxID)
			assert.NoError(t, err, "generated ID should be a UUID")
			assert.Equal(t, ctxID, headerID)
			assert.Equal(t, ctxID, rec.Header().Get(RequestIDHeader))
		})
	}
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		id, _, _ := serve(httptest.NewRequest(http.MethodGet, "/", nil))
		seen[id] = true
	}
	assert.Len(t, seen, 10)
}
