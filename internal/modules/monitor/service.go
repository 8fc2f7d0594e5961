// Package monitor runs the crawl, analyze, persist, notify pipeline over the
// registered product list.
package monitor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/models"
	"github.com/review-monitor/core/internal/modules/analyzer"
	"github.com/review-monitor/core/internal/modules/crawler"
	"github.com/review-monitor/core/internal/modules/report"
	"github.com/review-monitor/core/internal/pkg/dateutil"
	"github.com/review-monitor/core/internal/pkg/metrics"
	"github.com/review-monitor/core/internal/storage"
)

// noCommentsMessage marks a product round that found nothing to analyze.
const noCommentsMessage = "无评论"

// ProductResult records the outcome of one product within a monitoring run.
type ProductResult struct {
	OK            bool   `json:"ok"`
	ProductID     int    `json:"productId"`
	SnapshotID    *int   `json:"snapshotId,omitempty"`
	ReportID      *int   `json:"reportId,omitempty"`
	NegativeCount int    `json:"negativeCount"`
	TotalComments int    `json:"totalComments,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Service orchestrates monitoring runs. One run walks all products in
// ascending id order; a failing product is recorded and never aborts the rest.
type Service struct {
	store    *storage.Store
	crawler  *crawler.Crawler
	analyzer *analyzer.Service
	notifier *WebhookNotifier
	logger   *zap.Logger
	metrics  *metrics.Collector
}

func NewService(store *storage.Store, cr *crawler.Crawler, an *analyzer.Service, notifier *WebhookNotifier, logger *zap.Logger, collector *metrics.Collector) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		crawler:  cr,
		analyzer: an,
		notifier: notifier,
		logger:   logger.Named("Monitor"),
		metrics:  collector,
	}
}

// Run executes one monitoring round over every registered product.
func (s *Service) Run(ctx context.Context) ([]ProductResult, error) {
	products, err := s.store.ListProducts()
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordMonitorRun()
	}
	s.logger.Info("开始监测", zap.Int("products", len(products)))

	results := make([]ProductResult, 0, len(products))
	for _, p := range products {
		res := s.runForProduct(ctx, p)
		if s.metrics != nil {
			if res.OK {
				s.metrics.RecordProductOK()
			} else {
				s.metrics.RecordProductFailed()
			}
		}
		if !res.OK {
			s.logger.Warn("商品监测失败",
				zap.Int("product_id", p.ID),
				zap.String("error", res.Error))
		}
		results = append(results, res)
	}

	s.logger.Info("监测完成", zap.Int("results", len(results)))
	return results, nil
}

func (s *Service) runForProduct(ctx context.Context, product models.Product) ProductResult {
	dateRange := dateutil.DateRangeForToday()
	crawl := s.crawler.FetchComments(crawler.Params{
		ProductURL: product.ProductURL,
		DateRange:  dateRange,
	})
	comments := crawl.Comments
	if len(comments) == 0 {
		return ProductResult{OK: true, ProductID: product.ID, Message: noCommentsMessage}
	}

	analyzed, err := s.analyzer.AnalyzeComments(ctx, comments)
	if err != nil {
		return ProductResult{OK: false, ProductID: product.ID, Error: err.Error()}
	}

	snapshotID, reportID, err := s.persist(product, dateRange, comments, analyzed)
	if err != nil {
		return ProductResult{OK: false, ProductID: product.ID, Error: err.Error()}
	}

	reportDate, _ := splitDateRange(dateRange)
	s.notifier.NotifyReportCreated(ctx, ReportCreatedPayload{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductURL:    product.ProductURL,
		ReportID:      reportID,
		ReportDate:    reportDate,
		NegativeCount: len(analyzed.NegativeList),
		TotalComments: len(comments),
	})

	return ProductResult{
		OK:            true,
		ProductID:     product.ID,
		SnapshotID:    &snapshotID,
		ReportID:      &reportID,
		NegativeCount: len(analyzed.NegativeList),
		TotalComments: len(comments),
	}
}

// persist stores the snapshot under the exact range the crawl used, so a run
// crossing midnight keeps them consistent.
func (s *Service) persist(product models.Product, dateRange string, comments []models.Comment, analyzed *analyzer.Result) (snapshotID, reportID int, err error) {
	start, end := splitDateRange(dateRange)
	reportDate := start

	snapshotID, err = s.store.InsertSnapshot(product.ID, start, end, len(comments),
		map[string]interface{}{"comments": comments})
	if err != nil {
		return 0, 0, err
	}

	negativeSummary := report.BuildNegativeSummary(analyzed.NegativeList, report.MaxSummaryItems)
	content := report.BuildReportContent(reportDate, product.Name, product.ProductURL,
		analyzed.NegativeList, analyzed.SummaryByDimension)

	reportID, err = s.store.InsertReport(product.ID, &snapshotID, reportDate,
		len(analyzed.NegativeList), &negativeSummary, analyzed.SummaryByDimension, &content)
	if err != nil {
		return 0, 0, err
	}
	return snapshotID, reportID, nil
}

func splitDateRange(dateRange string) (start, end string) {
	parts := strings.SplitN(dateRange, " to ", 2)
	start = strings.TrimSpace(parts[0])
	end = start
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	return start, end
}
