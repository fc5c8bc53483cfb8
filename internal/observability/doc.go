// Package observability groups the logging, metrics, tracing and SLO
// subpackages shared by the API server, the worker and the CLI.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//	metrics.RecordHTTPRequest("GET", "/articles", "200", 120*time.Millisecond, 512)
package observability
