// Package observability groups the service's telemetry subpackages.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: store and background job Prometheus collectors
//   - tracing: OpenTelemetry provider setup and server spans
package observability
