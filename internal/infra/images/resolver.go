package images

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
	"newswire/internal/resilience/circuitbreaker"
)

// userAgent matches the feed fetcher's identification convention.
const userAgent = "NewswireBot/1.0 (+https://newswire.example/bot; aggregation for non-commercial display)"

// imgTagPattern extracts the src of the first image tag embedded in feed
// content or description HTML. A single first-match pattern is enough here;
// full parsing is reserved for the page-fetch step.
var imgTagPattern = regexp.MustCompile(`<img[^>]+src=["']?([^"'\s>]+)["']?`)

// Resolver implements aggregate.ImageResolver. It never returns an error:
// every internal failure degrades to an empty result and a placeholder on
// the client. The only network work it does is the optional step-4 page
// fetch, which runs through per-host circuit breakers.
type Resolver struct {
	client *http.Client
	config PageFetchConfig
	logger *slog.Logger

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewResolver creates an image resolver with the given page-fetch
// configuration. A nil logger falls back to slog.Default.
func NewResolver(cfg PageFetchConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		config:   cfg,
		logger:   logger,
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}

	r.client = &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			// Redirect targets get the same SSRF validation as the
			// original URL.
			if err := validateURL(req.URL.String(), cfg.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return r
}

// Resolve determines a best-effort representative image URL for the item.
// The fallback chain runs in strict order, first match wins:
//
//  1. enclosure with an image/* media type
//  2. first image tag in the content HTML
//  3. first image tag in the description/snippet
//  4. bounded fetch of the article page, scanned selector by selector
//
// Every step only accepts well-formed absolute http(s) URLs; anything else
// falls through. When all steps fail the result is empty, which the API
// serializes as null.
func (r *Resolver) Resolve(ctx context.Context, item entity.FeedItem) string {
	if strings.HasPrefix(item.EnclosureType, "image/") && isAbsoluteHTTPURL(item.EnclosureURL) {
		metrics.RecordImageResolved("enclosure")
		return item.EnclosureURL
	}

	if img := firstImageTag(item.Content); img != "" {
		metrics.RecordImageResolved("content")
		return img
	}

	if img := firstImageTag(item.Description); img != "" {
		metrics.RecordImageResolved("snippet")
		return img
	}

	if r.config.Enabled && item.Link != "" {
		if img := r.resolveFromPage(ctx, item.Link); img != "" {
			metrics.RecordImageResolved("page")
			return img
		}
	}

	metrics.RecordImageResolved("none")
	return ""
}

// firstImageTag scans an HTML fragment for the first image tag with an
// absolute src.
func firstImageTag(html string) string {
	if html == "" {
		return ""
	}
	m := imgTagPattern.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	if !isAbsoluteHTTPURL(m[1]) {
		return ""
	}
	return m[1]
}

// resolveFromPage fetches the article page and scans it against the ordered
// selector list. All failures, including the circuit being open, degrade to
// an empty result.
func (r *Resolver) resolveFromPage(ctx context.Context, link string) string {
	cb := r.breakerFor(link)

	result, err := cb.Execute(func() (interface{}, error) {
		return r.fetchAndScan(ctx, link)
	})
	if err != nil {
		r.logger.Debug("article page image scan failed",
			slog.String("url", link),
			slog.Any("error", err))
		return ""
	}

	return result.(string)
}

// breakerFor returns the page-fetch circuit breaker for the link's host,
// creating it on first use. Per-host granularity keeps one slow news site
// from suspending page fetches for the rest.
func (r *Resolver) breakerFor(link string) *circuitbreaker.CircuitBreaker {
	host := hostOf(link)

	r.mu.Lock()
	defer r.mu.Unlock()

	cb, ok := r.breakers[host]
	if !ok {
		cb = circuitbreaker.New(circuitbreaker.PageFetchConfig("page-fetch:" + host))
		r.breakers[host] = cb
	}
	return cb
}

// fetchAndScan performs the bounded page fetch and selector scan.
func (r *Resolver) fetchAndScan(ctx context.Context, link string) (interface{}, error) {
	if err := validateURL(link, r.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("page fetch failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	metrics.RecordPageFetchDuration(time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// Read with a hard size cap so a misbehaving page cannot exhaust
	// memory.
	body, err := io.ReadAll(io.LimitReader(resp.Body, r.config.MaxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}
	if int64(len(body)) > r.config.MaxBodySize {
		return "", fmt.Errorf("%w: body exceeds %d bytes", ErrBodyTooLarge, r.config.MaxBodySize)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse page HTML: %w", err)
	}

	return scanDocument(doc), nil
}

// hostOf extracts the host from a link for breaker keying. Unparseable
// links share one breaker under the raw string.
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	return u.Host
}
