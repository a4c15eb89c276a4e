// Package probe implements a lightweight feed availability check. It is run
// on a schedule by the API process and exports per-source reachability
// gauges, so operators can tell a silently dead feed from a quiet news day.
package probe

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/metrics"
)

const probeTimeout = 10 * time.Second

// Prober checks each configured source's feed endpoint for reachability.
type Prober struct {
	Client  *http.Client
	Sources []entity.Source
	Logger  *slog.Logger
}

// New creates a Prober over the given sources. A nil client gets a default
// with the probe timeout applied.
func New(sources []entity.Source, client *http.Client, logger *slog.Logger) *Prober {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{Client: client, Sources: sources, Logger: logger}
}

// Run probes every source sequentially and records availability gauges.
// The probe is observational only; failures are logged, never returned.
func (p *Prober) Run(ctx context.Context) {
	start := time.Now()
	up := 0

	for _, src := range p.Sources {
		if err := p.probeOne(ctx, src); err != nil {
			p.Logger.Warn("source availability probe failed",
				slog.String("source", src.Name),
				slog.String("feed_url", src.FeedURL),
				slog.Any("error", err))
			metrics.SetSourceAvailable(src.Name, false)
			continue
		}
		metrics.SetSourceAvailable(src.Name, true)
		up++
	}

	p.Logger.Info("availability probe completed",
		slog.Int("sources", len(p.Sources)),
		slog.Int("reachable", up),
		slog.Duration("duration", time.Since(start)))
}

// probeOne issues a bounded GET against the feed URL. The body is drained
// and discarded; only the status matters.
func (p *Prober) probeOne(ctx context.Context, src entity.Source) error {
	reqCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, src.FeedURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "NewswireBot/1.0 (+https://newswire.example/bot; availability probe)")

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode >= 400 {
		return &statusError{code: resp.StatusCode, status: resp.Status}
	}
	return nil
}

// statusError reports a non-success HTTP status from a probe.
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return "unexpected status: " + e.status
}
