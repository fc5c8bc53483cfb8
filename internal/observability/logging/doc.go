// Package logging provides structured logging utilities with context propagation.
//
// Servers log JSON to stdout. The CLI logs to stderr and switches to text
// output when stderr is a terminal.
//
// Example usage:
//
//	import "newsdiary/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    slog.SetDefault(logger)
//	    logger.Info("worker started", slog.String("schedule", "0 */3 * * *"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
