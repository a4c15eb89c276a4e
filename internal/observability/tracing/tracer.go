// Package tracing provides OpenTelemetry tracing integration.
//
// It exposes the application tracer and HTTP middleware that creates a
// server span per request and propagates the trace ID to clients via the
// X-Trace-Id response header.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the newswire application.
var tracer = otel.Tracer("newswire")

// GetTracer returns the global tracer for creating spans.
// This tracer can be used throughout the application to create new spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
