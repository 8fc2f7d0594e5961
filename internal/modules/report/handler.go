// Package report exposes persisted monitoring reports and the negative
// comment trend aggregation, plus the markdown rendering of report bodies.
package report

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/review-monitor/core/internal/pkg/params"
	"github.com/review-monitor/core/internal/pkg/response"
	"github.com/review-monitor/core/internal/storage"
)

const (
	defaultListLimit = 100
	maxListLimit     = 200
	defaultTrendDays = 30
	maxTrendDays     = 365
)

type Handler struct {
	store *storage.Store
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports", h.list)
	rg.GET("/reports/:id", h.get)
	rg.GET("/reports/:id/html", h.getHTML)
	rg.GET("/trends", h.trends)
}

func (h *Handler) list(c *gin.Context) {
	productID := params.OptionalID(c.Query("product_id"))
	limit := params.Clamp(c.Query("limit"), defaultListLimit, maxListLimit)

	rows, err := h.store.ListReports(productID, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rows)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := params.ID(c)
	if !ok {
		response.BadRequest(c, "Invalid id")
		return
	}
	detail, err := h.store.GetReport(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if detail == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, detail)
}

func (h *Handler) getHTML(c *gin.Context) {
	id, ok := params.ID(c)
	if !ok {
		response.BadRequest(c, "Invalid id")
		return
	}
	detail, err := h.store.GetReport(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if detail == nil {
		response.NotFound(c)
		return
	}

	content := ""
	if detail.Content != nil {
		content = *detail.Content
	}
	title := fmt.Sprintf("负面评论监测报告 %s", detail.ReportDate)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(RenderReportHTML(title, content)))
}

func (h *Handler) trends(c *gin.Context) {
	productID := params.OptionalID(c.Query("product_id"))
	days := params.Clamp(c.Query("days"), defaultTrendDays, maxTrendDays)

	rows, err := h.store.GetTrends(productID, days)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, rows)
}
