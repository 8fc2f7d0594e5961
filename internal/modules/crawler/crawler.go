// Package crawler simulates the e-commerce review crawler boundary. It serves
// a fixed corpus of reviews, optionally filtered by a "<start> to <end>" date
// range. The corpus is loaded once at construction and held immutably for the
// process lifetime.
package crawler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/models"
)

const (
	defaultProductURL = "https://example.com/product/1"
	defaultDateRange  = "2024-12-01 to 2024-12-22"
)

//go:embed mock_comments.json
var defaultCorpus []byte

var rangeSeparator = regexp.MustCompile(`(?i)\s+to\s+`)

// Crawler serves comments from its in-memory corpus.
type Crawler struct {
	comments []models.Comment
	logger   *zap.Logger
}

// Params selects what to fetch. Missing fields fall back to fixed placeholder
// values, mirroring the upstream crawler API.
type Params struct {
	ProductURL string
	DateRange  string
}

// New builds a Crawler. When dataFile is empty the embedded default corpus is
// used; otherwise the file is read once and becomes the corpus.
func New(dataFile string, logger *zap.Logger) (*Crawler, error) {
	raw := defaultCorpus
	if strings.TrimSpace(dataFile) != "" {
		b, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("read comment corpus %q: %w", dataFile, err)
		}
		raw = b
	}

	var comments []models.Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, fmt.Errorf("parse comment corpus: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{comments: comments, logger: logger.Named("Crawler")}, nil
}

// FetchComments returns the corpus filtered by the date range. When the filter
// leaves nothing, the full corpus is returned instead so that a demo run on a
// stale corpus still produces a report.
func (c *Crawler) FetchComments(params Params) models.CrawlResult {
	productURL := params.ProductURL
	if productURL == "" {
		productURL = defaultProductURL
	}
	dateRange := params.DateRange
	if dateRange == "" {
		dateRange = defaultDateRange
	}

	list := c.comments
	if start, end, ok := parseDateRange(params.DateRange); ok {
		filtered := make([]models.Comment, 0, len(c.comments))
		for _, cm := range c.comments {
			if inRange(cm.CommentTime, start, end) {
				filtered = append(filtered, cm)
			}
		}
		if len(filtered) == 0 {
			c.logger.Warn("日期过滤后无评论，回退到全量语料",
				zap.String("date_range", dateRange),
				zap.Int("corpus_size", len(c.comments)))
		} else {
			list = filtered
		}
	}

	out := make([]models.Comment, len(list))
	copy(out, list)
	return models.CrawlResult{
		ProductURL: productURL,
		DateRange:  dateRange,
		Comments:   out,
	}
}

func parseDateRange(raw string) (start, end string, ok bool) {
	if strings.TrimSpace(raw) == "" {
		return "", "", false
	}
	parts := rangeSeparator.Split(raw, -1)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// inRange compares the date part (first 10 chars) of a comment timestamp
// against the inclusive [start, end] bounds. Timestamps without a date pass.
func inRange(commentTime, start, end string) bool {
	if commentTime == "" {
		return true
	}
	t := commentTime
	if len(t) > 10 {
		t = t[:10]
	}
	return t >= start && t <= end
}
