// Package logging builds the service's slog loggers and carries a
// request-scoped logger through context.Context.
//
// Example usage:
//
//	logger := logging.New(logging.Options{Level: "info", Format: "json"})
//	slog.SetDefault(logger)
//
//	func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.FromContext(r.Context()).Info("saving article")
//	}
package logging
