package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/handler/http/respond"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

/* ───── rate limiting ───── */

func TestRateLimiter_Burst(t *testing.T) {
	tests := []struct {
		name     string
		burst    int
		requests int
		want     []int
	}{
		{"within burst", 3, 3, []int{200, 200, 200}},
		{"burst exceeded", 3, 5, []int{200, 200, 200, 429, 429}},
		{"burst of one", 1, 2, []int{200, 429}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(0.001, tt.burst)
			handler := rl.Limit(okHandler())

			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodGet, "/api/all-news", nil)
				req.RemoteAddr = "192.168.1.1:12345"
				rr := httptest.NewRecorder()
				handler.ServeHTTP(rr, req)

				assert.Equal(t, tt.want[i], rr.Code, "request %d", i+1)
			}
		})
	}
}

func TestRateLimiter_RejectionEnvelope(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Limit(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/save-article", nil)
		req.RemoteAddr = "10.0.0.1:1"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}
	require.Equal(t, http.StatusOK, send().Code)

	rr := send()
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))

	var env respond.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(10, 1)
	now := time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	_, ok := rl.allow("1.2.3.4")
	require.True(t, ok)
	wait, ok := rl.allow("1.2.3.4")
	require.False(t, ok)
	assert.InDelta(t, 100*time.Millisecond, wait, float64(5*time.Millisecond))

	now = now.Add(150 * time.Millisecond)
	_, ok = rl.allow("1.2.3.4")
	assert.True(t, ok)
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Limit(okHandler())

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/all-news", nil)
		req.RemoteAddr = ip
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, ip)
	}
	assert.Equal(t, 3, rl.Len())
}

func TestRateLimiter_ExemptAndDisabled(t *testing.T) {
	t.Run("probes are never limited", func(t *testing.T) {
		handler := NewRateLimiter(0.001, 1).Limit(okHandler())
		for i := 0; i < 5; i++ {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})

	t.Run("zero rps disables limiting", func(t *testing.T) {
		handler := NewRateLimiter(0, 1).Limit(okHandler())
		for i := 0; i < 5; i++ {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/all-news", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		}
	})
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(0.001, 10)
	handler := rl.Limit(okHandler())

	var mu sync.Mutex
	codes := map[int]int{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/api/all-news", nil)
			req.RemoteAddr = "192.168.1.9:1"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			mu.Lock()
			codes[rr.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, codes[http.StatusOK])
	assert.Equal(t, 40, codes[http.StatusTooManyRequests])
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 11, 16, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("old")
	now = now.Add(10 * time.Minute)
	rl.allow("fresh")

	assert.Equal(t, 1, rl.Cleanup(5*time.Minute))
	assert.Equal(t, 1, rl.Len())
}

/* ───── client IP ───── */

func TestTrustedProxies_ClientIP(t *testing.T) {
	tp, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 2001:db8::1 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr", "192.168.1.1:12345", "", "", "192.168.1.1"},
		{"trusted proxy forwarded for first hop", "10.0.0.1:1", "203.0.113.7, 10.0.0.1", "", "203.0.113.7"},
		{"trusted proxy forwarded single", "10.0.0.1:1", " 203.0.113.8 ", "", "203.0.113.8"},
		{"trusted proxy real ip", "10.0.0.1:1", "", "198.51.100.2", "198.51.100.2"},
		{"garbage forwarded falls back", "10.0.0.1:1", "not-an-ip", "198.51.100.3", "198.51.100.3"},
		{"trusted proxy without headers", "10.0.0.1:1", "", "", "10.0.0.1"},
		{"untrusted peer cannot spoof", "203.0.113.50:1", "1.1.1.1", "2.2.2.2", "203.0.113.50"},
		{"trusted ipv6 proxy", "[2001:db8::1]:443", "203.0.113.9", "", "203.0.113.9"},
		{"ipv6", "[2001:db8::2]:443", "203.0.113.9", "", "2001:db8::2"},
		{"no port", "192.168.1.1", "", "", "192.168.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			assert.Equal(t, tt.want, tp.ClientIP(req))
		})
	}
}

func TestTrustedProxies_ZeroValueIgnoresHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	assert.Equal(t, "10.0.0.1", TrustedProxies{}.ClientIP(req))
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	for _, in := range []string{"10.0.0.0/33", "not-an-ip", "10.0.0/8"} {
		_, err := ParseTrustedProxies([]string{in})
		assert.Error(t, err, in)
	}
}

func TestRateLimiter_ForwardedClients(t *testing.T) {
	tp, err := ParseTrustedProxies([]string{"10.0.0.1"})
	require.NoError(t, err)
	rl := NewRateLimiter(0.001, 1)
	rl.TrustProxies(tp)
	handler := rl.Limit(okHandler())

	// two clients behind the same proxy get separate buckets
	for _, client := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/api/all-news", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		req.Header.Set("X-Forwarded-For", client)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, client)
	}
	assert.Equal(t, 2, rl.Len())
}

/* ───── logging & recovery ───── */

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success at info", http.StatusOK, "INFO"},
		{"client error at warn", http.StatusNotFound, "WARN"},
		{"server error at error", http.StatusServiceUnavailable, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			handler := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})))

			req := httptest.NewRequest(http.MethodGet, "/api/saved-articles?x=1", nil)
			req.Header.Set(requestid.RequestIDHeader, "req-1")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, "/api/saved-articles", entry["path"])
			assert.Equal(t, "x=1", entry["query"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.EqualValues(t, 4, entry["bytes"])
		})
	}
}

func TestRecover(t *testing.T) {
	t.Run("panic becomes 500 envelope", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/saved-articles", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		var env respond.Envelope
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		assert.False(t, env.Success)
		assert.Equal(t, "Internal server error", env.Message)
		assert.Contains(t, buf.String(), "panic recovered")
	})

	t.Run("started response is left alone", func(t *testing.T) {
		handler := Recover(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("partial"))
			panic("late")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "partial", rr.Body.String())
	})

	t.Run("no panic passes through", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Recover(discardLogger())(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
