package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Validate(t *testing.T) {
	tests := []struct {
		name      string
		source    Source
		wantField string
	}{
		{
			name: "valid https source",
			source: Source{
				Name:     "BBC News",
				FeedURL:  "https://feeds.bbci.co.uk/news/rss.xml",
				Category: "general",
				Trusted:  true,
			},
		},
		{
			name: "valid http source",
			source: Source{
				Name:     "Local Feed",
				FeedURL:  "http://example.com/rss",
				Category: "general",
			},
		},
		{
			name: "missing name",
			source: Source{
				FeedURL:  "https://example.com/rss",
				Category: "general",
			},
			wantField: "name",
		},
		{
			name: "missing category",
			source: Source{
				Name:    "BBC News",
				FeedURL: "https://example.com/rss",
			},
			wantField: "category",
		},
		{
			name: "non-http scheme",
			source: Source{
				Name:     "BBC News",
				FeedURL:  "ftp://example.com/rss",
				Category: "general",
			},
			wantField: "feed_url",
		},
		{
			name: "relative URL",
			source: Source{
				Name:     "BBC News",
				FeedURL:  "/news/rss.xml",
				Category: "general",
			},
			wantField: "feed_url",
		},
		{
			name: "empty URL",
			source: Source{
				Name:     "BBC News",
				Category: "general",
			},
			wantField: "feed_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestSource_ZeroValue(t *testing.T) {
	var source Source

	assert.Equal(t, "", source.Name)
	assert.Equal(t, "", source.FeedURL)
	assert.Equal(t, "", source.Category)
	assert.False(t, source.Trusted)
	assert.Error(t, source.Validate())
}
