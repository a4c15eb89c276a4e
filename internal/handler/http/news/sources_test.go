package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/config"
)

func TestSourcesHandler(t *testing.T) {
	table, err := config.NewSourceTable(testSources())
	require.NoError(t, err)

	h := SourcesHandler{Sources: table}
	req := httptest.NewRequest(http.MethodGet, "/api/news/sources", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp SourcesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Sources, 3)
	assert.Equal(t, "BBC News", resp.Sources[0].Name)
	assert.Equal(t, "general", resp.Sources[0].Category)
	assert.True(t, resp.Sources[0].Trusted)
	assert.Equal(t, "business", resp.Sources[1].Category)

	// Feed URLs stay internal.
	assert.NotContains(t, w.Body.String(), "feed_url")
	assert.NotContains(t, w.Body.String(), "bbc.example/rss")
}

func TestRegister(t *testing.T) {
	table, err := config.NewSourceTable(testSources())
	require.NoError(t, err)
	h := newListHandler(&stubFetcher{}, nil)

	mux := http.NewServeMux()
	Register(mux, h.Svc, table, nil)

	t.Run("news route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("sources route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/news/sources", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("post rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/news", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
