package news

import (
	"net/http"

	"newswire/internal/config"
	"newswire/internal/handler/http/respond"
)

// SourcesHandler lists the configured sources with their category and trust
// flag. Feed URLs are internal configuration and are not exposed.
type SourcesHandler struct {
	Sources *config.SourceTable
}

func (h SourcesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	all := h.Sources.All()
	out := make([]SourceDTO, 0, len(all))
	for _, s := range all {
		out = append(out, SourceDTO{
			Name:     s.Name,
			Category: s.Category,
			Trusted:  s.Trusted,
		})
	}
	respond.JSON(w, http.StatusOK, SourcesResponse{Sources: out, Total: len(out)})
}
