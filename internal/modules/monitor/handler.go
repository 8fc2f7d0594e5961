package monitor

import (
	"github.com/gin-gonic/gin"

	"github.com/review-monitor/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/monitor/run", h.run)
}

// run executes a full monitoring round synchronously and returns the
// per-product results.
func (h *Handler) run(c *gin.Context) {
	results, err := h.svc.Run(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, results)
}
