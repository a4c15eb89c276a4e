package aggregate

import "errors"

// Sentinel errors for aggregation operations.
var (
	// ErrFeedFetchFailed indicates that fetching a feed from a source URL
	// failed. This can occur due to network issues, timeouts, or invalid
	// feed content. The aggregator recovers from it per source.
	ErrFeedFetchFailed = errors.New("failed to fetch feed from source")

	// ErrInvalidQuery indicates that the aggregation query parameters are
	// out of range or malformed.
	ErrInvalidQuery = errors.New("invalid aggregation query")
)
