// File: internal/order/handler.go
package order

import (
	"errors"

	"carmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new order handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("OrderHandler")}
}

// RegisterRoutes sets up the routes for order operations. All order routes
// require authentication; the transaction overview is admin-only.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminRoleMW gin.HandlerFunc) {
	orders := router.Group("/orders")
	orders.Use(authMW)
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.POST("/:id/complete", h.completeOrder)
		orders.POST("/:id/cancel", h.cancelOrder)

		admin := orders.Group("/admin")
		admin.Use(adminRoleMW)
		{
			admin.GET("", h.adminListOrders)
			admin.POST("/:id/complete", h.adminCompleteOrder)
		}
	}
}

func (h *Handler) createOrder(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Order created.", order)
}

func (h *Handler) listOrders(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	orders, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Orders retrieved successfully.", orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)

	order, err := h.service.Get(c.Request.Context(), orderID, userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Order retrieved successfully.", order)
}

func (h *Handler) completeOrder(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)

	order, err := h.service.Complete(c.Request.Context(), orderID, userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Order completed.", order)
}

func (h *Handler) cancelOrder(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)

	order, err := h.service.Cancel(c.Request.Context(), orderID, userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Order cancelled.", order)
}

func (h *Handler) adminListOrders(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)

	orders, pagination, err := h.service.AdminListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Orders retrieved successfully.", orders, pagination)
}

func (h *Handler) adminCompleteOrder(c *gin.Context) {
	orderID, ok := h.parseID(c)
	if !ok {
		return
	}

	order, err := h.service.AdminComplete(c.Request.Context(), orderID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Order completed.", order)
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid order ID format."))
		return uuid.Nil, false
	}
	return id, true
}
