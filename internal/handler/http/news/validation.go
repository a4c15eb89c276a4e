package news

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/aggregate"
)

const maxSourceFilterLen = 100

// parseQuery validates the list endpoint's query parameters and builds an
// aggregation query. Violations wrap aggregate.ErrInvalidQuery with
// field-level detail and surface as 400 responses.
func parseQuery(r *http.Request, knownCategories map[string]bool) (aggregate.Query, error) {
	q := aggregate.Query{
		Category: r.URL.Query().Get("category"),
		Source:   r.URL.Query().Get("source"),
		Limit:    aggregate.DefaultLimit,
	}

	// Categories are matched case-insensitively, same as the aggregator.
	if q.Category != "" && !knownCategories[strings.ToLower(q.Category)] {
		return q, invalidQuery("category", "unknown category: "+q.Category)
	}

	if len(q.Source) > maxSourceFilterLen {
		return q, invalidQuery("source", "source filter too long")
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, invalidQuery("limit", "limit must be an integer")
		}
		if limit < 1 || limit > aggregate.MaxLimit {
			return q, invalidQuery("limit", "limit must be between 1 and 100")
		}
		q.Limit = limit
	}

	return q, nil
}

// invalidQuery builds a field-level query validation error matching both
// aggregate.ErrInvalidQuery and entity.ValidationError.
func invalidQuery(field, message string) error {
	return fmt.Errorf("%w: %w", aggregate.ErrInvalidQuery,
		&entity.ValidationError{Field: field, Message: message})
}
