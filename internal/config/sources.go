// Package config loads the static source table and server settings for the
// aggregation service. The source list is fixed configuration: it is loaded
// once at process start and never mutated afterwards.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"newswire/internal/domain/entity"
)

// SourceTable is an immutable collection of configured news sources.
type SourceTable struct {
	sources []entity.Source
}

// sourcesFile is the YAML shape accepted by LoadSources overrides.
type sourcesFile struct {
	Sources []entity.Source `yaml:"sources"`
}

// defaultSources is the built-in UK source list used when no override file
// is configured.
func defaultSources() []entity.Source {
	return []entity.Source{
		{Name: "BBC News", FeedURL: "https://feeds.bbci.co.uk/news/rss.xml", Category: "general", Trusted: true},
		{Name: "BBC Business", FeedURL: "https://feeds.bbci.co.uk/news/business/rss.xml", Category: "business", Trusted: true},
		{Name: "The Guardian", FeedURL: "https://www.theguardian.com/uk/rss", Category: "general", Trusted: true},
		{Name: "Sky News", FeedURL: "https://feeds.skynews.com/feeds/rss/home.xml", Category: "general", Trusted: true},
		{Name: "The Telegraph", FeedURL: "https://www.telegraph.co.uk/rss.xml", Category: "general", Trusted: true},
		{Name: "The Independent", FeedURL: "https://www.independent.co.uk/news/uk/rss", Category: "general", Trusted: true},
	}
}

// LoadSources builds the source table. If the SOURCES_FILE environment
// variable names a YAML file, sources are read from it; otherwise the
// built-in list is used. Every source is validated and duplicate names are
// rejected.
func LoadSources() (*SourceTable, error) {
	path := os.Getenv("SOURCES_FILE")
	if path == "" {
		return NewSourceTable(defaultSources())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file %s: %w", path, err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s contains no sources", path)
	}

	return NewSourceTable(f.Sources)
}

// NewSourceTable validates the given sources and wraps them in an immutable
// table.
func NewSourceTable(sources []entity.Source) (*SourceTable, error) {
	seen := make(map[string]bool, len(sources))
	for i := range sources {
		if err := sources[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: source %q: %w", entity.ErrValidationFailed, sources[i].Name, err)
		}
		if seen[sources[i].Name] {
			return nil, fmt.Errorf("%w: duplicate source name %q", entity.ErrValidationFailed, sources[i].Name)
		}
		seen[sources[i].Name] = true
	}

	table := &SourceTable{sources: make([]entity.Source, len(sources))}
	copy(table.sources, sources)
	return table, nil
}

// All returns a copy of the configured sources in their configured order.
func (t *SourceTable) All() []entity.Source {
	out := make([]entity.Source, len(t.sources))
	copy(out, t.sources)
	return out
}

// Len returns the number of configured sources.
func (t *SourceTable) Len() int {
	return len(t.sources)
}
