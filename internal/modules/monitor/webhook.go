package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/review-monitor/core/internal/pkg/metrics"
)

// ReportCreatedPayload is delivered to the configured webhook after each
// persisted report.
type ReportCreatedPayload struct {
	Event         string  `json:"event"`
	ProductID     int     `json:"productId"`
	ProductName   *string `json:"productName"`
	ProductURL    string  `json:"productUrl"`
	ReportID      int     `json:"reportId"`
	ReportDate    string  `json:"reportDate"`
	NegativeCount int     `json:"negativeCount"`
	TotalComments int     `json:"totalComments"`
}

// WebhookNotifier posts report_created events to a single configured URL.
// Delivery failures are logged and swallowed; a broken webhook never fails a
// monitoring run.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Collector
}

func NewWebhookNotifier(url string, logger *zap.Logger, collector *metrics.Collector) *WebhookNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.Named("Webhook"),
		metrics: collector,
	}
}

// NotifyReportCreated delivers the payload. A notifier without a URL is a
// no-op.
func (n *WebhookNotifier) NotifyReportCreated(ctx context.Context, payload ReportCreatedPayload) {
	if n == nil || n.url == "" {
		return
	}
	payload.Event = "report_created"

	body, _ := json.Marshal(payload)
	deliveryID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.recordFailure(deliveryID, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", payload.Event)
	req.Header.Set("X-Webhook-Delivery", deliveryID)
	req.Header.Set("X-Webhook-Timestamp", fmt.Sprintf("%d", time.Now().UnixMilli()))

	resp, err := n.client.Do(req)
	if err != nil {
		n.recordFailure(deliveryID, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if n.metrics != nil {
		n.metrics.RecordWebhookDelivery(ok)
	}
	n.logger.Info("webhook 通知已发送",
		zap.String("delivery_id", deliveryID),
		zap.Int("report_id", payload.ReportID),
		zap.Int("status", resp.StatusCode))
}

func (n *WebhookNotifier) recordFailure(deliveryID string, err error) {
	if n.metrics != nil {
		n.metrics.RecordWebhookDelivery(false)
	}
	n.logger.Warn("webhook 通知发送失败",
		zap.String("delivery_id", deliveryID),
		zap.Error(err))
}
