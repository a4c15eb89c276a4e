package news

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newswire/internal/handler/http/respond"
	"newswire/internal/observability/logging"
	"newswire/internal/usecase/aggregate"
)

// complianceNote accompanies every listing response. Headlines and snippets
// are displayed with attribution; readers are always linked to the original
// publisher.
const complianceNote = "Aggregated from publicly available RSS feeds; content remains the property of the attributed publisher."

// ListHandler serves the aggregated news listing.
type ListHandler struct {
	Svc    *aggregate.Service
	Logger *slog.Logger
}

// ServeHTTP runs one aggregation for the query's filters and responds with
// the merged article list. A request where every source fails still returns
// 200 with an empty list; absence of news is not an error.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	// The Logging middleware stores a request-scoped logger; an explicit
	// handler logger takes precedence when set.
	logger := logging.FromContext(ctx)
	if h.Logger != nil {
		logger = logging.WithRequestID(ctx, h.Logger)
	}

	q, err := parseQuery(r, h.categories())
	if err != nil {
		logger.Warn("invalid news query parameters",
			slog.String("query", r.URL.RawQuery),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	candidates := h.Svc.CandidateSources(q)

	articles, err := h.Svc.Aggregate(ctx, q)
	if err != nil {
		// Only context cancellation reaches here; per-source failures
		// are absorbed by the aggregator.
		logger.Error("aggregation aborted",
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}

	logger.Info("news listing served",
		slog.String("category", q.Category),
		slog.String("source_filter", q.Source),
		slog.Int("limit", q.Limit),
		slog.Int("sources", len(candidates)),
		slog.Int("articles", len(dtos)),
		slog.Duration("duration", time.Since(startTime)),
	)

	respond.JSON(w, http.StatusOK, ListResponse{
		Articles:   dtos,
		Total:      len(dtos),
		Sources:    len(candidates),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Compliance: complianceNote,
	})
}

// categories returns the set of category values accepted by the endpoint:
// the catch-all "general" plus every configured source category.
func (h ListHandler) categories() map[string]bool {
	known := map[string]bool{aggregate.CategoryGeneral: true}
	for _, src := range h.Svc.Sources {
		known[strings.ToLower(src.Category)] = true
	}
	return known
}
