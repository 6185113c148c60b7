package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)

	return string(body)
}

func TestMetrics_Observer(t *testing.T) {
	m := metrics.New()

	m.CodeConflict()
	m.CodeConflict()
	m.URLConflict()
	m.StoreError()
	m.Created(3)

	body := scrape(t, m)

	assert.Contains(t, body, "shortener_code_conflicts_total 2")
	assert.Contains(t, body, "shortener_url_conflicts_total 1")
	assert.Contains(t, body, "shortener_store_errors_total 1")
	assert.Contains(t, body, "shortener_mappings_created_total 1")
	assert.Contains(t, body, "shortener_insert_attempts_count 1")
}

func TestMetrics_Middleware(t *testing.T) {
	m := metrics.New()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(m.Middleware)

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(_ context.Context, _ *struct{}) (*testOutput, error) {
		return &testOutput{Body: "pong"}, nil
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := scrape(t, m)

	assert.Contains(t, body, `http_request_duration_seconds_count{operation="ping",status="200"} 1`)
}
