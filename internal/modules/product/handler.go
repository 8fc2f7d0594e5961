// Package product manages the monitored product list.
package product

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/review-monitor/core/internal/pkg/params"
	"github.com/review-monitor/core/internal/pkg/response"
	"github.com/review-monitor/core/internal/storage"
)

type Handler struct {
	store *storage.Store
}

func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.list)
	products.POST("", h.create)
	products.GET("/:id", h.get)
	products.DELETE("/:id", h.delete)
}

type createProductDTO struct {
	ProductURL string  `json:"product_url"`
	Name       *string `json:"name"`
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.ListProducts()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var dto createProductDTO
	// An empty or malformed body falls through to the required-field check.
	_ = c.ShouldBindJSON(&dto)

	url := strings.TrimSpace(dto.ProductURL)
	if url == "" {
		response.BadRequest(c, "product_url required")
		return
	}
	var name *string
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		name = &trimmed
	}

	id, err := h.store.AddProduct(url, name)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateProductURL) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	created, err := h.store.GetProduct(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, created)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := params.ID(c)
	if !ok {
		response.BadRequest(c, "Invalid id")
		return
	}
	item, err := h.store.GetProduct(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := params.ID(c)
	if !ok {
		response.BadRequest(c, "Invalid id")
		return
	}
	if err := h.store.DeleteProduct(id); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Done(c)
}
