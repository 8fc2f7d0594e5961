package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcfg "github.com/review-monitor/core/internal/config"
	"github.com/review-monitor/core/internal/models"
)

type fakeLLM struct {
	server   *httptest.Server
	calls    atomic.Int64
	lastBody []byte
	reply    string
	status   int
}

// newFakeLLM stands in for an openai-compatible chat completions endpoint and
// records the last request body.
func newFakeLLM(t *testing.T) *fakeLLM {
	t.Helper()
	f := &fakeLLM{status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		f.lastBody = body

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": f.reply}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeLLM) service() *Service {
	return NewService(&appcfg.AIProvider{
		Type:     "openai-compatible",
		Endpoint: f.server.URL,
		APIKey:   "sk-test",
		Model:    "test-model",
	}, zap.NewNop(), nil)
}

func sampleComments(n int) []models.Comment {
	out := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Comment{
			CommentID:   fmt.Sprintf("CMT-%d", i+1),
			UserName:    "用户",
			Rating:      1 + i%5,
			CommentText: fmt.Sprintf("评论内容 %d", i+1),
			CommentTime: "2024-12-01 10:00:00",
		})
	}
	return out
}

func TestAnalyzeCommentsEmptyInputSkipsProvider(t *testing.T) {
	f := newFakeLLM(t)
	svc := f.service()

	res, err := svc.AnalyzeComments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.NegativeList)
	assert.Empty(t, res.SummaryByDimension)
	assert.Equal(t, int64(0), f.calls.Load(), "empty input must not reach the provider")
}

func TestAnalyzeCommentsMarksNegatives(t *testing.T) {
	f := newFakeLLM(t)
	f.reply = `{
		"items": [
			{"index": 1, "sentiment": "正面", "dimensions": [], "keywords": ""},
			{"index": 2, "sentiment": "负面", "dimensions": ["质量", "物流"], "keywords": "屏幕裂痕"}
		],
		"summary": {"negative_count": 1, "by_dimension": {"质量": 1, "物流": 1}}
	}`
	svc := f.service()

	res, err := svc.AnalyzeComments(context.Background(), sampleComments(2))
	require.NoError(t, err)

	require.Len(t, res.NegativeList, 1)
	neg := res.NegativeList[0]
	assert.Equal(t, "CMT-2", neg.CommentID)
	assert.Equal(t, []string{"质量", "物流"}, neg.Dimensions)
	assert.Equal(t, "屏幕裂痕", neg.Keywords)

	// Overlaid on the zero default for the four dimensions.
	assert.Equal(t, models.DimensionSummary{"质量": 1, "服务": 0, "物流": 1, "价格": 0}, res.SummaryByDimension)

	var req struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(f.lastBody, &req))
	assert.Equal(t, "test-model", req.Model)
	assert.InDelta(t, 0.1, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[1].Content, "[2] (评分:2) 评论内容 2")
}

func TestAnalyzeCommentsUnwrapsFencedJSON(t *testing.T) {
	f := newFakeLLM(t)
	f.reply = "```json\n{\"items\": [{\"index\": 1, \"sentiment\": \"负面\"}], \"summary\": {\"negative_count\": 1, \"by_dimension\": {}}}\n```"
	svc := f.service()

	res, err := svc.AnalyzeComments(context.Background(), sampleComments(1))
	require.NoError(t, err)
	require.Len(t, res.NegativeList, 1)
	// Missing dimensions decode to an empty slice, not nil.
	assert.NotNil(t, res.NegativeList[0].Dimensions)
	assert.Empty(t, res.NegativeList[0].Dimensions)
}

func TestAnalyzeCommentsCapsBatch(t *testing.T) {
	f := newFakeLLM(t)
	f.reply = `{"items": [], "summary": {"negative_count": 0, "by_dimension": {}}}`
	svc := f.service()

	_, err := svc.AnalyzeComments(context.Background(), sampleComments(60))
	require.NoError(t, err)

	var req struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(f.lastBody, &req))
	prompt := req.Messages[len(req.Messages)-1].Content
	assert.Contains(t, prompt, "[50]")
	assert.NotContains(t, prompt, "[51]")
}

func TestAnalyzeCommentsRejectsNonJSONReply(t *testing.T) {
	f := newFakeLLM(t)
	f.reply = "抱歉，我无法处理这个请求。"
	svc := f.service()

	_, err := svc.AnalyzeComments(context.Background(), sampleComments(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "抱歉")
}

func TestAnalyzeCommentsMapsByPositionWithoutIndex(t *testing.T) {
	f := newFakeLLM(t)
	f.reply = `{
		"items": [
			{"sentiment": "正面", "dimensions": [], "keywords": ""},
			{"sentiment": "负面", "dimensions": ["质量"], "keywords": "屏幕裂痕"}
		],
		"summary": {"negative_count": 1, "by_dimension": {"质量": 1}}
	}`
	svc := f.service()

	res, err := svc.AnalyzeComments(context.Background(), sampleComments(2))
	require.NoError(t, err)

	require.Len(t, res.NegativeList, 1)
	neg := res.NegativeList[0]
	assert.Equal(t, "CMT-2", neg.CommentID)
	assert.Equal(t, []string{"质量"}, neg.Dimensions)
	assert.Equal(t, "屏幕裂痕", neg.Keywords)
}

func TestAnalyzeCommentsIgnoresItemsBeyondBatch(t *testing.T) {
	f := newFakeLLM(t)
	f.reply = `{
		"items": [
			{"sentiment": "负面", "keywords": "有效"},
			{"index": 9, "sentiment": "负面"},
			{"sentiment": "负面"}
		],
		"summary": {"negative_count": 3, "by_dimension": {}}
	}`
	svc := f.service()

	// Two comments: the explicit out-of-range index and the trailing extra
	// item are both dropped.
	res, err := svc.AnalyzeComments(context.Background(), sampleComments(2))
	require.NoError(t, err)
	require.Len(t, res.NegativeList, 1)
	assert.Equal(t, "CMT-1", res.NegativeList[0].CommentID)
	assert.Equal(t, "有效", res.NegativeList[0].Keywords)
}
