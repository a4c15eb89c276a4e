package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
	"newswire/internal/usecase/aggregate"
)

type stubFetcher struct {
	items   map[string][]entity.FeedItem
	failing map[string]error
}

func (f *stubFetcher) Fetch(_ context.Context, src entity.Source) ([]entity.FeedItem, error) {
	if err, ok := f.failing[src.Name]; ok {
		return nil, err
	}
	return f.items[src.Name], nil
}

type stubImages struct {
	byLink map[string]string
}

func (r *stubImages) Resolve(_ context.Context, item entity.FeedItem) string {
	return r.byLink[item.Link]
}

func testSources() []entity.Source {
	return []entity.Source{
		{Name: "BBC News", FeedURL: "https://bbc.example/rss", Category: "general", Trusted: true},
		{Name: "BBC Business", FeedURL: "https://bbc.example/business", Category: "business", Trusted: true},
		{Name: "The Guardian", FeedURL: "https://guardian.example/rss", Category: "general", Trusted: true},
	}
}

func newListHandler(fetcher aggregate.FeedFetcher, images aggregate.ImageResolver) ListHandler {
	if images == nil {
		images = &stubImages{}
	}
	svc := aggregate.NewService(testSources(), fetcher, images, nil, 4)
	return ListHandler{Svc: svc}
}

func doList(t *testing.T, h ListHandler, target string) (*httptest.ResponseRecorder, ListResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp ListResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestListHandler_Basic(t *testing.T) {
	published := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{items: map[string][]entity.FeedItem{
		"BBC News": {{
			Title:       "Budget announced",
			Link:        "https://bbc.example/budget",
			Published:   "Mon, 02 Mar 2026 09:00:00 GMT",
			PublishedAt: published,
			Description: "The chancellor set out spending plans.",
		}},
	}}
	images := &stubImages{byLink: map[string]string{
		"https://bbc.example/budget": "https://img.example.com/budget.jpg",
	}}
	h := newListHandler(fetcher, images)

	w, resp := doList(t, h, "/api/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 3, resp.Sources)
	assert.NotEmpty(t, resp.Timestamp)
	assert.Contains(t, resp.Compliance, "attributed publisher")

	a := resp.Articles[0]
	assert.Equal(t, "Budget announced", a.Title)
	assert.Equal(t, "https://bbc.example/budget", a.Link)
	assert.Equal(t, "Mon, 02 Mar 2026 09:00:00 GMT", a.PubDate)
	assert.Equal(t, "The chancellor set out spending plans.", a.Description)
	require.NotNil(t, a.Image)
	assert.Equal(t, "https://img.example.com/budget.jpg", *a.Image)
	assert.Equal(t, "BBC News", a.Source)
	assert.Equal(t, "general", a.Category)
	assert.True(t, a.Trusted)
}

func TestListHandler_NullImage(t *testing.T) {
	fetcher := &stubFetcher{items: map[string][]entity.FeedItem{
		"BBC News": {{Title: "No picture", Link: "https://bbc.example/plain"}},
	}}
	h := newListHandler(fetcher, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// The image key must be present and explicitly null.
	assert.Contains(t, w.Body.String(), `"image":null`)
}

func TestListHandler_AllSourcesFailed(t *testing.T) {
	fetcher := &stubFetcher{failing: map[string]error{
		"BBC News":     errors.New("down"),
		"BBC Business": errors.New("down"),
		"The Guardian": errors.New("down"),
	}}
	h := newListHandler(fetcher, nil)

	w, resp := doList(t, h, "/api/news")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Articles)
	assert.Equal(t, 0, resp.Total)
	assert.Equal(t, 3, resp.Sources)
}

func TestListHandler_Filters(t *testing.T) {
	published := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{items: map[string][]entity.FeedItem{
		"BBC News":     {{Title: "general story", Link: "https://bbc.example/1", PublishedAt: published}},
		"BBC Business": {{Title: "markets story", Link: "https://bbc.example/2", PublishedAt: published}},
		"The Guardian": {{Title: "guardian story", Link: "https://guardian.example/1", PublishedAt: published}},
	}}
	h := newListHandler(fetcher, nil)

	t.Run("category", func(t *testing.T) {
		w, resp := doList(t, h, "/api/news?category=business")
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "BBC Business", resp.Articles[0].Source)
		assert.Equal(t, 1, resp.Sources)
	})

	t.Run("category case-insensitive", func(t *testing.T) {
		w, resp := doList(t, h, "/api/news?category=Business")
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "BBC Business", resp.Articles[0].Source)
	})

	t.Run("source", func(t *testing.T) {
		w, resp := doList(t, h, "/api/news?source=Guardian")
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, "The Guardian", resp.Articles[0].Source)
	})

	t.Run("limit", func(t *testing.T) {
		w, resp := doList(t, h, "/api/news?limit=2")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, resp.Articles, 2)
	})
}

func TestListHandler_ValidationErrors(t *testing.T) {
	h := newListHandler(&stubFetcher{}, nil)

	tests := []struct {
		name   string
		target string
	}{
		{name: "unknown category", target: "/api/news?category=sports"},
		{name: "limit zero", target: "/api/news?limit=0"},
		{name: "limit too large", target: "/api/news?limit=101"},
		{name: "limit not a number", target: "/api/news?limit=abc"},
		{name: "limit negative", target: "/api/news?limit=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.NotEqual(t, "internal server error", body["error"])
		})
	}
}

func TestListHandler_EmptyArticlesIsArrayNotNull(t *testing.T) {
	fetcher := &stubFetcher{}
	h := newListHandler(fetcher, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"articles":[]`)
}
