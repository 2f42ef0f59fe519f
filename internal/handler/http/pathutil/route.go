package pathutil

import (
	"context"
	"sync"
)

type routeKey struct{}

// Route carries the ServeMux pattern matched for a request back out to
// middleware that wrapped the mux. Middleware deeper in the chain replaces
// the *http.Request, so the pattern cannot be read off the outer request.
type Route struct {
	mu      sync.Mutex
	pattern string
}

// Pattern returns the recorded pattern, or "" when no route matched.
func (r *Route) Pattern() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pattern
}

// Capture returns a context holding a Route. An existing Route is reused so
// every middleware in one chain observes the same value.
func Capture(ctx context.Context) (context.Context, *Route) {
	if r, ok := ctx.Value(routeKey{}).(*Route); ok {
		return ctx, r
	}
	r := &Route{}
	return context.WithValue(ctx, routeKey{}, r), r
}

// Record stores pattern in the context's Route, if any.
func Record(ctx context.Context, pattern string) {
	if r, ok := ctx.Value(routeKey{}).(*Route); ok {
		r.mu.Lock()
		r.pattern = pattern
		r.mu.Unlock()
	}
}
