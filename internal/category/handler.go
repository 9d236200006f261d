// File: internal/category/handler.go
package category

import (
	"carmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for categories.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new category handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("CategoryHandler")}
}

// RegisterRoutes sets up the routes for category operations. All category
// endpoints are public.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:slug", h.getCategory)
	}
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Categories retrieved successfully.", categories)
}

func (h *Handler) getCategory(c *gin.Context) {
	category, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Category retrieved successfully.", category)
}
