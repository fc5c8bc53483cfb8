// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Collection metrics (per-category scrapes, runs, added articles)
//   - Store metrics (collection sizes, document load/save latency)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newsdiary/internal/observability/metrics"
//
//	func scrape(category string) {
//	    start := time.Now()
//	    articles, err := fetch(category)
//	    if err != nil {
//	        metrics.RecordScrape(category, time.Since(start), 0, "other")
//	        return
//	    }
//	    metrics.RecordScrape(category, time.Since(start), len(articles), "")
//	}
package metrics
