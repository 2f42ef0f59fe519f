package http

import (
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/respond"
)

const (
	maxPathLength = 2048
	// MaxBodyBytes bounds request bodies; a saved article is a few KB.
	MaxBodyBytes = 1 << 20
)

// InputValidation rejects over-long paths with 414 and caps request bodies at
// maxBody bytes. Handlers detect an exceeded cap with IsBodyTooLarge.
func InputValidation(maxBody int64) func(http.Handler) http.Handler {
	if maxBody <= 0 {
		maxBody = MaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				respond.Fail(w, http.StatusRequestURITooLong, "URI too long", "")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBody)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsBodyTooLarge reports whether err came from a body capped by InputValidation.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
