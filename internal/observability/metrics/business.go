package metrics

import "time"

// RecordFeedFetch records a successful feed fetch for a source.
func RecordFeedFetch(source string, duration time.Duration, items int) {
	FeedFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	if items > 0 {
		FeedItemsFetched.WithLabelValues(source).Add(float64(items))
	}
}

// RecordFeedFetchError records a failed feed fetch for a source.
func RecordFeedFetchError(source string) {
	FeedFetchErrors.WithLabelValues(source).Inc()
}

// RecordImageResolved records an image resolution outcome. Step identifies
// the fallback stage that produced the result: "enclosure", "content",
// "snippet", "page", or "none" when every stage came up empty.
func RecordImageResolved(step string) {
	ImagesResolved.WithLabelValues(step).Inc()
}

// RecordPageFetchDuration records the time taken by a secondary article-page
// fetch during image resolution.
func RecordPageFetchDuration(duration time.Duration) {
	PageFetchDuration.Observe(duration.Seconds())
}

// RecordAggregation records one completed aggregation fan-out.
func RecordAggregation(duration time.Duration, sources, articles int) {
	AggregationDuration.Observe(duration.Seconds())
	AggregationSources.Observe(float64(sources))
	AggregationArticles.Observe(float64(articles))
}

// SetSourceAvailable records the result of an availability probe.
func SetSourceAvailable(source string, up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	SourceAvailable.WithLabelValues(source).Set(v)
}
