// Package tracing wires OpenTelemetry into the service: Init installs an SDK
// tracer provider and W3C propagator, Middleware opens one server span per request.
//
// Example usage:
//
//	tp, err := tracing.Init(tracing.Config{ServiceName: "newsdesk", Version: version})
//	if err != nil { ... }
//	defer func() { _ = tp.Shutdown(context.Background()) }()
//
//	handler := tracing.Middleware(mux)
package tracing
