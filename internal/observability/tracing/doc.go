// Package tracing provides OpenTelemetry tracing integration.
//
// HTTP requests get a server span through Middleware; collection runs and
// per-category scrapes open internal spans through StartSpan. The trace ID
// of every HTTP request is echoed in the X-Trace-Id response header.
//
//	import "newsdiary/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Setup(1.0)
//	    defer func() { _ = shutdown(context.Background()) }()
//	}
package tracing
