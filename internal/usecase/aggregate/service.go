// Package aggregate implements the multi-source news aggregation use case.
// It fans out across the configured sources, resolves a representative image
// per item, and merges the results into a single sorted, truncated list.
package aggregate

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
)

const (
	// DefaultLimit is used when a query does not specify a limit.
	DefaultLimit = 20

	// MaxLimit bounds the number of articles a single request may ask for.
	MaxLimit = 100

	// defaultImageParallelism caps the total number of in-flight image
	// resolutions across all sources of one request. The source never
	// bounded this; sources x items concurrent page fetches is too spiky.
	defaultImageParallelism = 16

	// CategoryGeneral is the catch-all category that matches every source.
	CategoryGeneral = "general"
)

// FeedFetcher fetches and parses one source's feed into raw items.
type FeedFetcher interface {
	Fetch(ctx context.Context, src entity.Source) ([]entity.FeedItem, error)
}

// ImageResolver determines a best-effort representative image URL for a raw
// feed item. Implementations never fail: all internal errors degrade to an
// empty string.
type ImageResolver interface {
	Resolve(ctx context.Context, item entity.FeedItem) string
}

// Query describes one aggregation request.
type Query struct {
	// Category filters sources by category; "general" or empty matches all.
	Category string

	// Source, when non-empty, keeps only sources whose name contains it
	// (case-insensitive).
	Source string

	// Limit is the maximum number of articles to return (1..MaxLimit).
	// Zero means DefaultLimit.
	Limit int
}

// Service orchestrates feed fetching and image resolution across the
// configured sources. It is stateless between requests; the source list is
// read-only shared configuration.
type Service struct {
	Sources []entity.Source
	Fetcher FeedFetcher
	Images  ImageResolver
	Logger  *slog.Logger

	// imageSem bounds concurrent image resolutions across all sources of a
	// request. Shared between requests so the process-wide in-flight count
	// stays bounded too.
	imageSem chan struct{}
}

// NewService creates an aggregation service over the given immutable source
// list. imageParallelism caps concurrent image resolutions; values below 1
// fall back to the default.
func NewService(sources []entity.Source, fetcher FeedFetcher, images ImageResolver, logger *slog.Logger, imageParallelism int) *Service {
	if imageParallelism < 1 {
		imageParallelism = defaultImageParallelism
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Sources:  sources,
		Fetcher:  fetcher,
		Images:   images,
		Logger:   logger,
		imageSem: make(chan struct{}, imageParallelism),
	}
}

// Aggregate fetches every candidate source concurrently, resolves images,
// and returns the merged articles sorted by publish date descending and
// truncated to the query limit.
//
// A source whose fetch fails contributes zero articles and never fails the
// batch; an aggregation where every source fails returns an empty slice and
// a nil error. Absence of news is not an error condition.
func (s *Service) Aggregate(ctx context.Context, q Query) ([]entity.Article, error) {
	start := time.Now()

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	candidates := s.selectSources(q)

	// Per-source buckets keep the pre-sort merge order deterministic
	// regardless of which source finishes first.
	buckets := make([][]entity.Article, len(candidates))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, src := range candidates {
		eg.Go(func() error {
			articles, err := s.collectSource(egCtx, src)
			if err != nil {
				// Cancellation of the request is not a source failure.
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				// Failure isolation: a broken source is logged and
				// skipped, never propagated.
				s.Logger.Warn("failed to fetch feed, skipping source",
					slog.String("source", src.Name),
					slog.String("feed_url", src.FeedURL),
					slog.Any("error", err))
				metrics.RecordFeedFetchError(src.Name)
				return nil
			}
			buckets[i] = articles
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		// Only context cancellation can surface here.
		return nil, err
	}

	merged := make([]entity.Article, 0, limit)
	for _, bucket := range buckets {
		merged = append(merged, bucket...)
	}

	// Descending by publish date; unparseable dates have a zero
	// PublishedAt and therefore sort last. Stable so equal dates keep the
	// deterministic source order.
	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].PublishedAt.After(merged[b].PublishedAt)
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}

	metrics.RecordAggregation(time.Since(start), len(candidates), len(merged))
	return merged, nil
}

// CandidateSources returns the sources an aggregation with this query would
// consult, in configured order.
func (s *Service) CandidateSources(q Query) []entity.Source {
	return s.selectSources(q)
}

// selectSources applies the category and source-name filters to the
// configured source list.
func (s *Service) selectSources(q Query) []entity.Source {
	category := strings.ToLower(q.Category)
	nameFilter := strings.ToLower(q.Source)

	candidates := make([]entity.Source, 0, len(s.Sources))
	for _, src := range s.Sources {
		if category != "" && category != CategoryGeneral && !strings.EqualFold(src.Category, category) {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(src.Name), nameFilter) {
			continue
		}
		candidates = append(candidates, src)
	}
	return candidates
}

// collectSource fetches one source and resolves images for its items
// concurrently, bounded by the shared image semaphore. Item order within the
// source is preserved.
func (s *Service) collectSource(ctx context.Context, src entity.Source) ([]entity.Article, error) {
	fetchStart := time.Now()
	items, err := s.Fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	metrics.RecordFeedFetch(src.Name, time.Since(fetchStart), len(items))

	articles := make([]entity.Article, len(items))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, item := range items {
		eg.Go(func() error {
			select {
			case s.imageSem <- struct{}{}:
			case <-egCtx.Done():
				return egCtx.Err()
			}
			image := s.Images.Resolve(egCtx, item)
			<-s.imageSem

			articles[i] = entity.NewArticle(item, src, image)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return articles, nil
}
