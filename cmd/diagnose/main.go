// Command diagnose fetches every configured feed once and prints a
// per-source report. Useful when a publisher changes its feed URL or
// starts rejecting our user agent.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"newswire/internal/config"
	"newswire/internal/domain/entity"
	"newswire/internal/infra/scraper"
	"newswire/internal/observability/logging"
)

type feedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func main() {
	logger := logging.NewTextLogger()

	sources, err := config.LoadSources()
	if err != nil {
		logger.Error("load sources", "error", err)
		os.Exit(1)
	}

	fetcher := scraper.NewRSSFetcher(&http.Client{})
	all := sources.All()

	logger.Info("diagnosing feed sources", "count", len(all))

	diagnostics := make([]feedDiagnostic, 0, len(all))
	for i, src := range all {
		logger.Info("diagnosing", "progress", fmt.Sprintf("%d/%d", i+1, len(all)), "source", src.Name)
		diagnostics = append(diagnostics, diagnoseFeed(fetcher, src))

		// Be nice to the publishers.
		time.Sleep(500 * time.Millisecond)
	}

	if err := printReport(diagnostics); err != nil {
		logger.Error("write report", "error", err)
		os.Exit(1)
	}

	for _, d := range diagnostics {
		if d.Status != "OK" {
			os.Exit(1)
		}
	}
}

func diagnoseFeed(fetcher *scraper.RSSFetcher, src entity.Source) feedDiagnostic {
	diag := feedDiagnostic{Name: src.Name, URL: src.FeedURL}

	ctx, cancel := context.WithTimeout(context.Background(), scraper.FetchTimeout)
	defer cancel()

	start := time.Now()
	items, err := fetcher.Fetch(ctx, src)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
		} else {
			diag.Status = "FETCH_ERROR"
		}
		diag.ErrorMessage = err.Error()
		return diag
	}

	diag.ItemCount = len(items)
	if len(items) == 0 {
		diag.Status = "EMPTY"
		diag.ErrorMessage = "feed has no items"
		return diag
	}

	latest := items[0].PublishedAt
	for _, it := range items[1:] {
		if it.PublishedAt.After(latest) {
			latest = it.PublishedAt
		}
	}
	if !latest.IsZero() {
		diag.LatestDate = latest.Format(time.RFC3339)
	}

	diag.Status = "OK"
	return diag
}

func printReport(diagnostics []feedDiagnostic) error {
	var ok, broken int
	for _, d := range diagnostics {
		if d.Status == "OK" {
			ok++
		} else {
			broken++
		}
	}

	report := struct {
		Generated   string           `json:"generated"`
		Total       int              `json:"total"`
		Working     int              `json:"working"`
		Broken      int              `json:"broken"`
		Diagnostics []feedDiagnostic `json:"diagnostics"`
	}{
		Generated:   time.Now().Format(time.RFC3339),
		Total:       len(diagnostics),
		Working:     ok,
		Broken:      broken,
		Diagnostics: diagnostics,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
