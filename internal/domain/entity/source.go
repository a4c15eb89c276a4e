package entity

import (
	"fmt"
	"net/url"
	"time"
)

// Source is a configured news feed with an associated category and editorial
// trust flag. Sources are loaded once at process start and treated as
// immutable afterwards.
type Source struct {
	Name     string `yaml:"name"`
	FeedURL  string `yaml:"feed_url"`
	Category string `yaml:"category"`
	Trusted  bool   `yaml:"trusted"`
}

// Validate checks that the source has a name, a category, and an absolute
// http(s) feed URL.
func (s *Source) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if s.Category == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	u, err := url.Parse(s.FeedURL)
	if err != nil {
		return &ValidationError{Field: "feed_url", Message: fmt.Sprintf("invalid feed URL: %v", err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "feed_url", Message: "feed URL must use http or https"}
	}
	if u.Host == "" {
		return &ValidationError{Field: "feed_url", Message: "feed URL must be absolute"}
	}
	return nil
}

// FeedItem is one entry from a parsed feed, pre-normalization. It is owned
// solely by the fetch call that produced it.
type FeedItem struct {
	Title         string
	Link          string
	Published     string // original feed date string
	PublishedAt   time.Time
	Description   string
	Content       string
	EnclosureURL  string
	EnclosureType string
}
