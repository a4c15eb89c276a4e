// Package news provides HTTP handlers for the aggregated news endpoints.
// It includes the article list endpoint and the configured source listing.
package news

import "newswire/internal/domain/entity"

// ArticleDTO represents the JSON structure for one aggregated article.
type ArticleDTO struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	PubDate     string  `json:"pubDate"` // original feed date string
	Description string  `json:"description"`
	Image       *string `json:"image"` // null when no image was resolved
	Source      string  `json:"source"`
	Category    string  `json:"category"`
	Trusted     bool    `json:"trusted"`
}

// ListResponse is the envelope for the news listing endpoint.
type ListResponse struct {
	Articles   []ArticleDTO `json:"articles"`
	Total      int          `json:"total"`
	Sources    int          `json:"sources"`
	Timestamp  string       `json:"timestamp"`
	Compliance string       `json:"compliance"`
}

// SourceDTO represents one configured source in the source listing.
type SourceDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Trusted  bool   `json:"trusted"`
}

// SourcesResponse is the envelope for the source listing endpoint.
type SourcesResponse struct {
	Sources []SourceDTO `json:"sources"`
	Total   int         `json:"total"`
}

// toDTO converts a domain article to its JSON shape. An empty image becomes
// an explicit null, never an empty string.
func toDTO(a entity.Article) ArticleDTO {
	dto := ArticleDTO{
		Title:       a.Title,
		Link:        a.Link,
		PubDate:     a.Published,
		Description: a.Description,
		Source:      a.SourceName,
		Category:    a.Category,
		Trusted:     a.Trusted,
	}
	if a.Image != "" {
		img := a.Image
		dto.Image = &img
	}
	return dto
}
