package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/config"
)

const analysisReply = `{"items": [{"index": 1, "sentiment": "负面", "dimensions": ["质量"], "keywords": "坏的"}], "summary": {"negative_count": 1, "by_dimension": {"质量": 1}}}`

func newTestApp(t *testing.T) *App {
	t.Helper()

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": analysisReply}},
			},
		})
	}))
	t.Cleanup(llm.Close)

	cfg := &config.AppConfig{
		Port:    3000,
		Env:     "development",
		DataDir: t.TempDir(),
		AI: config.AIProvider{
			Type:     "openai-compatible",
			Endpoint: llm.URL,
			APIKey:   "sk-test",
			Model:    "test-model",
		},
		Monitor: config.MonitorConfig{Interval: 24 * time.Hour},
	}

	a, err := New(zap.NewNop(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

func do(a *App, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	a.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "review_monitor_runs_total")
}

func TestUnknownRouteEnvelope(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "Not found"}`, w.Body.String())
}

func TestMonitorRunEndToEnd(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodPost, "/api/products", `{"product_url": "https://example.com/p/1", "name": "测试商品"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(a, http.MethodPost, "/api/monitor/run", "")
	require.Equal(t, http.StatusOK, w.Code)

	var runEnv struct {
		Success bool `json:"success"`
		Data    []struct {
			OK            bool `json:"ok"`
			ReportID      *int `json:"reportId"`
			NegativeCount int  `json:"negativeCount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runEnv))
	require.True(t, runEnv.Success)
	require.Len(t, runEnv.Data, 1)
	require.True(t, runEnv.Data[0].OK)
	require.NotNil(t, runEnv.Data[0].ReportID)
	assert.Equal(t, 1, runEnv.Data[0].NegativeCount)

	w = do(a, http.MethodGet, "/api/reports", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"negative_count":1`)

	w = do(a, http.MethodGet, "/api/trends", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"report_count":1`)

	// The run counter moved.
	w = do(a, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), "review_monitor_runs_total 1")
}

func TestCronEndpoints(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/api/cron", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "daily_review_monitor")

	w = do(a, http.MethodPost, "/api/cron/run/daily_review_monitor", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(a, http.MethodPost, "/api/cron/run/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOriginMatching(t *testing.T) {
	assert.Equal(t, "a.example.com:8080", extractOriginHost("https://a.example.com:8080"))
	assert.Equal(t, "raw-value", extractOriginHost("raw-value"))

	assert.True(t, matchOriginPattern("example.com", "example.com"))
	assert.True(t, matchOriginPattern("*.example.com", "api.example.com"))
	assert.False(t, matchOriginPattern("*.example.com", "example.org"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:5173"))
	assert.False(t, matchOriginPattern("example.com", "other.com"))
}
