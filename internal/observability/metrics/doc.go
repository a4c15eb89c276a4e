// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, in-flight)
//   - Aggregation pipeline metrics (feed fetches, image resolution, fan-out)
//   - Source availability gauges from the background probe
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newswire/internal/observability/metrics"
//
//	func fetchFeed(source string) {
//	    start := time.Now()
//	    // ... fetch ...
//	    metrics.RecordFeedFetch(source, time.Since(start), 5)
//	}
package metrics
