package news

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/aggregate"
)

func knownCats() map[string]bool {
	return map[string]bool{"general": true, "business": true}
}

func parseTarget(t *testing.T, target string) (aggregate.Query, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return parseQuery(req, knownCats())
}

func TestParseQuery_Defaults(t *testing.T) {
	q, err := parseTarget(t, "/api/news")
	require.NoError(t, err)

	assert.Empty(t, q.Category)
	assert.Empty(t, q.Source)
	assert.Equal(t, aggregate.DefaultLimit, q.Limit)
}

func TestParseQuery_CategoryCaseInsensitive(t *testing.T) {
	// The aggregator matches categories case-insensitively; validation
	// must accept the same spellings it would serve.
	for _, raw := range []string{"business", "Business", "BUSINESS"} {
		q, err := parseTarget(t, "/api/news?category="+raw)
		require.NoError(t, err, "category %q", raw)
		assert.Equal(t, raw, q.Category)
	}
}

func TestParseQuery_Errors(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantField string
	}{
		{name: "unknown category", target: "/api/news?category=sports", wantField: "category"},
		{name: "source filter too long", target: "/api/news?source=" + strings.Repeat("x", 101), wantField: "source"},
		{name: "limit not a number", target: "/api/news?limit=abc", wantField: "limit"},
		{name: "limit zero", target: "/api/news?limit=0", wantField: "limit"},
		{name: "limit above max", target: "/api/news?limit=101", wantField: "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTarget(t, tt.target)
			require.Error(t, err)
			require.ErrorIs(t, err, aggregate.ErrInvalidQuery)

			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}
