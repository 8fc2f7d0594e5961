// Package analyzer classifies review sentiment through an LLM. One batch of
// comments goes out as a single chat-completion call and comes back as a JSON
// verdict per comment plus an aggregate dimension summary.
package analyzer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appcfg "github.com/review-monitor/core/internal/config"
	"github.com/review-monitor/core/internal/models"
	"github.com/review-monitor/core/internal/pkg/metrics"
)

// AnalysisItem is the model's verdict for one comment. Items line up with the
// submitted batch by array position; Index is an optional 1-based override for
// models that echo the prompt numbering.
type AnalysisItem struct {
	Index      int      `json:"index,omitempty"`
	Sentiment  string   `json:"sentiment"`
	Dimensions []string `json:"dimensions"`
	Keywords   string   `json:"keywords"`
}

// AnalysisSummary is the model's aggregate over the batch.
type AnalysisSummary struct {
	NegativeCount int                     `json:"negative_count"`
	ByDimension   models.DimensionSummary `json:"by_dimension"`
}

// ParsedAnalysis is the complete decoded model reply.
type ParsedAnalysis struct {
	Items   []AnalysisItem  `json:"items"`
	Summary AnalysisSummary `json:"summary"`
}

// Result is what the monitoring pipeline consumes downstream.
type Result struct {
	NegativeList       []models.NegativeComment
	SummaryByDimension models.DimensionSummary
	Full               *ParsedAnalysis
}

// Service performs sentiment analysis against the configured AI provider.
type Service struct {
	provider *appcfg.AIProvider
	logger   *zap.Logger
	metrics  *metrics.Collector
}

func NewService(provider *appcfg.AIProvider, logger *zap.Logger, collector *metrics.Collector) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, logger: logger.Named("Analyzer"), metrics: collector}
}

// AnalyzeComments classifies at most BatchSize comments in one provider call.
// An empty input returns an empty result without calling the provider.
func (s *Service) AnalyzeComments(ctx context.Context, comments []models.Comment) (*Result, error) {
	if len(comments) == 0 {
		return &Result{
			NegativeList:       []models.NegativeComment{},
			SummaryByDimension: models.DimensionSummary{},
		}, nil
	}

	batch := comments
	if len(batch) > BatchSize {
		s.logger.Warn("评论数量超过单批上限，仅分析前若干条",
			zap.Int("total", len(comments)),
			zap.Int("batch_size", BatchSize))
		batch = batch[:BatchSize]
	}

	prompt := BuildBatchCommentPrompt(batch)
	raw, err := callAIWithSystemPrompt(ctx, s.provider, SystemPrompt, prompt)
	if err != nil {
		s.recordLLMCall(false)
		return nil, fmt.Errorf("AI 调用失败: %w", err)
	}
	s.recordLLMCall(true)

	parsed := new(ParsedAnalysis)
	if err := unmarshalAIJSON(raw, parsed); err != nil {
		return nil, fmt.Errorf("AI 返回内容不是合法 JSON: %s", excerpt(raw, 200))
	}

	negatives := make([]models.NegativeComment, 0, len(batch))
	for pos, item := range parsed.Items {
		if strings.TrimSpace(item.Sentiment) != "负面" {
			continue
		}
		i := pos
		if item.Index > 0 {
			i = item.Index - 1
		}
		if i >= len(batch) {
			continue
		}
		dims := item.Dimensions
		if dims == nil {
			dims = []string{}
		}
		negatives = append(negatives, models.NegativeComment{
			Comment:    batch[i],
			Dimensions: dims,
			Keywords:   item.Keywords,
		})
	}

	return &Result{
		NegativeList:       negatives,
		SummaryByDimension: parsed.Summary.ByDimension.Normalized(),
		Full:               parsed,
	}, nil
}

func (s *Service) recordLLMCall(ok bool) {
	if s.metrics != nil {
		s.metrics.RecordLLMCall(ok)
	}
}

func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
