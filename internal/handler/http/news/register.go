package news

import (
	"log/slog"
	"net/http"

	"newswire/internal/config"
	"newswire/internal/usecase/aggregate"
)

// Register registers the news endpoints with the given mux.
func Register(mux *http.ServeMux, svc *aggregate.Service, sources *config.SourceTable, logger *slog.Logger) {
	mux.Handle("GET /api/news", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/news/sources", SourcesHandler{Sources: sources})
}
