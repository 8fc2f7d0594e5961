// Package metrics exposes prometheus counters for the monitor pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the pipeline counters on a private registry.
type Collector struct {
	registry *prometheus.Registry

	monitorRuns      prometheus.Counter
	productsOK       prometheus.Counter
	productsFailed   prometheus.Counter
	llmCalls         *prometheus.CounterVec
	webhookDelivered *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		monitorRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "review_monitor_runs_total",
			Help: "Completed daily monitor passes.",
		}),
		productsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "review_monitor_products_ok_total",
			Help: "Products processed successfully within monitor passes.",
		}),
		productsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "review_monitor_products_failed_total",
			Help: "Products whose pipeline failed within monitor passes.",
		}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_monitor_llm_calls_total",
			Help: "Outbound LLM analysis calls by result.",
		}, []string{"result"}),
		webhookDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_monitor_webhook_deliveries_total",
			Help: "Webhook notification attempts by result.",
		}, []string{"result"}),
	}
	c.registry.MustRegister(
		c.monitorRuns,
		c.productsOK,
		c.productsFailed,
		c.llmCalls,
		c.webhookDelivered,
	)
	return c
}

func (c *Collector) RecordMonitorRun()    { c.monitorRuns.Inc() }
func (c *Collector) RecordProductOK()     { c.productsOK.Inc() }
func (c *Collector) RecordProductFailed() { c.productsFailed.Inc() }

func (c *Collector) RecordLLMCall(ok bool) {
	c.llmCalls.WithLabelValues(resultLabel(ok)).Inc()
}

func (c *Collector) RecordWebhookDelivery(ok bool) {
	c.webhookDelivered.WithLabelValues(resultLabel(ok)).Inc()
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
