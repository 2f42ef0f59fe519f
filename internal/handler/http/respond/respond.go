// Package respond writes the JSON envelope shared by every /api endpoint:
//
//	{"success": bool, "data"?: ..., "articles"?: ..., "message"?: "...", "error"?: "..."}
//
// Error details are passed through SanitizeError before they reach a client
// or a log line.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Envelope is the response body of every /api endpoint.
type Envelope struct {
	Success  bool   `json:"success"`
	Data     any    `json:"data,omitempty"`
	Articles any    `json:"articles,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

var exposeInternal atomic.Bool

// ExposeInternalErrors controls whether 5xx responses carry the sanitized
// cause in "error". It is enabled in development only.
func ExposeInternalErrors(on bool) { exposeInternal.Store(on) }

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Success writes {success:true, data}.
func Success(w http.ResponseWriter, code int, data any) {
	JSON(w, code, Envelope{Success: true, Data: data})
}

// SuccessMessage writes {success:true, message, data}.
func SuccessMessage(w http.ResponseWriter, code int, message string, data any) {
	JSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes {success:false, message, error}. detail is sanitized and
// omitted when empty.
func Fail(w http.ResponseWriter, code int, message, detail string) {
	JSON(w, code, Envelope{Success: false, Message: message, Error: sanitize(detail)})
}

// SafeError writes a failure envelope for err. Below 500 the sanitized error
// text is returned as "error". From 500 up the cause is logged and returned
// only when ExposeInternalErrors is on.
func SafeError(w http.ResponseWriter, code int, message string, err error) {
	if err == nil {
		Fail(w, code, message, "")
		return
	}

	if code < http.StatusInternalServerError {
		Fail(w, code, message, err.Error())
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("message", message),
		slog.String("error", SanitizeError(err)))

	detail := "internal server error"
	if exposeInternal.Load() {
		detail = err.Error()
	}
	Fail(w, code, message, detail)
}
