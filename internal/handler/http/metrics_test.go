package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/observability/metrics"
)

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}

	count := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/news", "200"))
	assert.Equal(t, 3.0, count)
}

func TestMetricsMiddleware_RecordsStatusCode(t *testing.T) {
	metrics.HTTPRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	count := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/news", "400"))
	assert.Equal(t, 1.0, count)
}

func TestMetricsMiddleware_InFlightReturnsToZero(t *testing.T) {
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.HTTPRequestsInFlight)
	}))

	before := testutil.ToFloat64(metrics.HTTPRequestsInFlight)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(metrics.HTTPRequestsInFlight))
}

func TestMetricsHandler_Exposition(t *testing.T) {
	// Touch a metric so it appears in the exposition output.
	metrics.RecordImageResolved("enclosure")

	srv := httptest.NewServer(MetricsHandler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "images_resolved_total"))
	assert.True(t, strings.Contains(text, "go_goroutines"))
}
