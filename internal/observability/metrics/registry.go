package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	// Buckets are tuned for API latencies dominated by upstream feed
	// fetches: from 5ms cache-like responses up to the 10s feed timeout.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Aggregation metrics track the feed fan-out pipeline
var (
	// FeedFetchDuration measures time to fetch and parse one source's feed
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch and parse a feed source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		},
		[]string{"source"},
	)

	// FeedItemsFetched counts raw items returned per source
	FeedItemsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_fetched_total",
			Help: "Total number of feed items fetched from sources",
		},
		[]string{"source"},
	)

	// FeedFetchErrors counts sources that failed to fetch during aggregation
	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of feed fetch failures",
		},
		[]string{"source"},
	)

	// ImagesResolved counts image resolution outcomes by the fallback step
	// that produced the result (enclosure, content, snippet, page, none)
	ImagesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "images_resolved_total",
			Help: "Total number of image resolutions by fallback step",
		},
		[]string{"step"},
	)

	// PageFetchDuration measures secondary article-page fetches made during
	// image resolution
	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Time taken to fetch an article page for image resolution",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 5},
		},
	)

	// AggregationDuration measures one full aggregation fan-out
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_duration_seconds",
			Help:    "Time taken to aggregate all candidate sources",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
		},
	)

	// AggregationSources measures how many candidate sources an
	// aggregation fanned out over after filtering
	AggregationSources = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_sources",
			Help:    "Number of candidate sources consulted by an aggregation",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 12, 16},
		},
	)

	// AggregationArticles measures how many articles an aggregation returned
	AggregationArticles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregation_articles",
			Help:    "Number of articles returned by an aggregation",
			Buckets: []float64{0, 5, 10, 20, 40, 60, 80, 100},
		},
	)

	// SourceAvailable reports the last availability probe result per source
	// (1 reachable, 0 unreachable)
	SourceAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "source_available",
			Help: "Whether the last availability probe of a source succeeded",
		},
		[]string{"source"},
	)
)
