// Package entity defines the core domain entities and validation logic for the
// application. It contains the fundamental business objects such as Article,
// Source, and FeedItem, along with their validation rules and domain-specific
// errors.
package entity

import "time"

// Article is the normalized, API-facing news entry. It is built once by
// merging a FeedItem with the Source it came from and the resolved image,
// and is never mutated afterwards.
type Article struct {
	Title       string
	Link        string
	Published   string // original feed date string, passed through verbatim
	PublishedAt time.Time
	Description string
	Image       string // absolute http(s) URL, or empty when no image was found
	SourceName  string
	Category    string
	Trusted     bool
}

// NewArticle builds an Article from a raw feed item, its source, and the
// resolved image URL. SourceName, Category, and Trusted are copied verbatim
// from the Source, never inferred from content.
func NewArticle(item FeedItem, src Source, image string) Article {
	return Article{
		Title:       item.Title,
		Link:        item.Link,
		Published:   item.Published,
		PublishedAt: item.PublishedAt,
		Description: item.Description,
		Image:       image,
		SourceName:  src.Name,
		Category:    src.Category,
		Trusted:     src.Trusted,
	}
}
