// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"newswire/internal/domain/entity"
	"newswire/internal/resilience/circuitbreaker"
	"newswire/internal/usecase/aggregate"
)

const (
	// FetchTimeout bounds a single feed fetch.
	FetchTimeout = 10 * time.Second

	// maxItemsPerSource caps each feed before returning, to bound the
	// total work per aggregation.
	maxItemsPerSource = 5

	// userAgent identifies the service to feed publishers. The URL points
	// at the crawler policy page; it is a courtesy convention, not a
	// security control.
	userAgent = "NewswireBot/1.0 (+https://newswire.example/bot; aggregation for non-commercial display)"
)

// RSSFetcher implements aggregate.FeedFetcher using the gofeed library.
// Each source gets its own circuit breaker so that one persistently broken
// feed cannot cut off the others.
type RSSFetcher struct {
	client *http.Client

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates a new RSSFetcher. A nil client gets a default one
// with the fetch timeout applied.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}
	return &RSSFetcher{
		client:   client,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// Fetch retrieves and parses a source's RSS/Atom feed, returning at most
// five raw items. Failures are wrapped with the source name so callers can
// attribute them; the caller treats any error as zero items from this
// source.
func (f *RSSFetcher) Fetch(ctx context.Context, src entity.Source) ([]entity.FeedItem, error) {
	cb := f.breakerFor(src.FeedURL)

	result, err := cb.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, src.FeedURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return nil, fmt.Errorf("%w: %s: circuit open", aggregate.ErrFeedFetchFailed, src.Name)
		}
		return nil, fmt.Errorf("%w: %s: %v", aggregate.ErrFeedFetchFailed, src.Name, err)
	}

	return result.([]entity.FeedItem), nil
}

// breakerFor returns the circuit breaker for a feed URL, creating it on
// first use.
func (f *RSSFetcher) breakerFor(feedURL string) *circuitbreaker.CircuitBreaker {
	f.mu.Lock()
	defer f.mu.Unlock()

	cb, ok := f.breakers[feedURL]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.FeedFetchConfig("feed-fetch:" + feedURL))
		f.breakers[feedURL] = cb
	}
	return cb
}

// doFetch performs the actual feed fetch without the circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]entity.FeedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if len(items) > maxItemsPerSource {
		items = items[:maxItemsPerSource]
	}

	out := make([]entity.FeedItem, 0, len(items))
	for _, it := range items {
		// Unparseable dates stay zero so they sort after everything else.
		var pubAt time.Time
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pubAt = *it.UpdatedParsed
		}

		item := entity.FeedItem{
			Title:       it.Title,
			Link:        it.Link,
			Published:   it.Published,
			PublishedAt: pubAt,
			Description: it.Description,
			Content:     it.Content,
		}
		if len(it.Enclosures) > 0 {
			item.EnclosureURL = it.Enclosures[0].URL
			item.EnclosureType = it.Enclosures[0].Type
		}

		out = append(out, item)
	}

	return out, nil
}
