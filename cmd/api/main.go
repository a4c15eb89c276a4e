package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"newswire/internal/config"
	hhttp "newswire/internal/handler/http"
	"newswire/internal/handler/http/news"
	"newswire/internal/handler/http/requestid"
	"newswire/internal/infra/images"
	"newswire/internal/infra/probe"
	"newswire/internal/infra/scraper"
	"newswire/internal/observability/logging"
	"newswire/internal/observability/tracing"
	"newswire/internal/usecase/aggregate"

	pkgconfig "newswire/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	sources, err := config.LoadSources()
	if err != nil {
		logger.Error("failed to load source configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("source configuration loaded", slog.Int("sources", sources.Len()))

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	svc := setupAggregator(logger, sources)
	handler := setupRoutes(logger, svc, sources, serverCfg)

	stopProbe := startAvailabilityProbe(logger, sources, serverCfg.ProbeSchedule)
	defer stopProbe()

	runServer(logger, handler, serverCfg)
}

// setupAggregator wires the feed fetcher and image resolver into the
// aggregation service.
func setupAggregator(logger *slog.Logger, sources *config.SourceTable) *aggregate.Service {
	feedClient := &http.Client{Timeout: scraper.FetchTimeout}
	fetcher := scraper.NewRSSFetcher(feedClient)

	imageCfg, err := images.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load image resolver configuration", slog.Any("error", err))
		logger.Warn("article page image fallback disabled due to configuration error")
		imageCfg = images.DefaultConfig()
		imageCfg.Enabled = false
	}
	resolver := images.NewResolver(imageCfg, logger)
	logger.Info("image resolver initialized",
		slog.Bool("page_fetch_enabled", imageCfg.Enabled),
		slog.Duration("page_fetch_timeout", imageCfg.Timeout))

	imageParallelism := pkgconfig.GetEnvInt("IMAGE_PARALLELISM", 0)
	return aggregate.NewService(sources.All(), fetcher, resolver, logger, imageParallelism)
}

// setupRoutes registers all HTTP routes and applies the middleware chain.
func setupRoutes(logger *slog.Logger, svc *aggregate.Service, sources *config.SourceTable, cfg *config.ServerConfig) http.Handler {
	version := pkgconfig.GetEnvString("VERSION", "dev")

	mux := http.NewServeMux()
	mux.Handle("/health", &hhttp.HealthHandler{Sources: sources, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{Sources: sources})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	news.Register(mux, svc, sources, logger)

	// Innermost to outermost: metrics -> tracing -> body limit -> logging
	// -> recovery -> rate limit -> request ID.
	chain := hhttp.MetricsMiddleware(mux)
	chain = tracing.Middleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if cfg.RateLimitRPS > 0 {
		limiter := hhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		chain = limiter.Middleware(chain)
		logger.Info("rate limiting enabled",
			slog.Int("rps", cfg.RateLimitRPS),
			slog.Int("burst", cfg.RateLimitBurst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	chain = requestid.Middleware(chain)
	return chain
}

// startAvailabilityProbe schedules the periodic feed availability probe.
// Returns a stop function for shutdown; an empty schedule disables the probe.
func startAvailabilityProbe(logger *slog.Logger, sources *config.SourceTable, schedule string) func() {
	if schedule == "" {
		logger.Info("availability probe disabled")
		return func() {}
	}

	prober := probe.New(sources.All(), nil, logger)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		prober.Run(context.Background())
	}); err != nil {
		logger.Error("failed to schedule availability probe",
			slog.String("schedule", schedule),
			slog.Any("error", err))
		return func() {}
	}
	c.Start()
	logger.Info("availability probe scheduled", slog.String("schedule", schedule))

	return func() {
		ctx := c.Stop()
		<-ctx.Done()
	}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, cfg *config.ServerConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
