// Package resilience provides fault tolerance patterns for calls that leave the process.
//
// The package supports:
//   - Circuit breakers that stop scraping a category that keeps failing and
//     fail fast while the SQL document store is unreachable
//   - Retry logic with exponential backoff and jitter for database connections
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ScraperConfig("정치"))
//	err := cb.Do(func() error {
//	    return scrape(ctx, "정치")
//	})
//
//	err = retry.WithBackoff(ctx, "ping", retry.DBConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
