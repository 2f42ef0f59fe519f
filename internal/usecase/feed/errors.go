// Package feed fetches pages of headlines from the configured news provider
// and normalizes every failure into a single UpstreamError.
package feed

import (
	"errors"
	"fmt"
)

// CodeAPIKeyMissing marks a provider that was started without credentials.
const CodeAPIKeyMissing = "apiKeyMissing"

// UpstreamError is the only error kind FetchPage returns for provider
// failures. Message carries the provider's own explanation when it gave one.
type UpstreamError struct {
	Provider string
	// StatusCode is the provider's HTTP status, 0 for transport failures.
	StatusCode int
	// Code is the provider's machine readable error code, e.g. "apiKeyInvalid".
	Code    string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// AsUpstream reports whether err is (or wraps) an UpstreamError.
func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
