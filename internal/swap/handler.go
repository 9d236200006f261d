// File: internal/swap/handler.go
package swap

import (
	"context"
	"errors"

	"carmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for swap requests.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new swap handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("SwapHandler")}
}

// RegisterRoutes sets up the routes for swap operations. All swap routes
// require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	swaps := router.Group("/swaps")
	swaps.Use(authMW)
	{
		swaps.POST("", h.createSwap)
		swaps.GET("", h.listSwaps)
		swaps.GET("/pending", h.listPendingSwaps)
		swaps.POST("/:id/accept", h.acceptSwap)
		swaps.POST("/:id/reject", h.rejectSwap)
		swaps.POST("/:id/complete", h.completeSwap)
	}
}

func (h *Handler) createSwap(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	var req CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	swap, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Swap request created.", swap)
}

func (h *Handler) listSwaps(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	swaps, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Swap requests retrieved successfully.", swaps)
}

func (h *Handler) listPendingSwaps(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	swaps, err := h.service.ListPendingForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Pending swap requests retrieved successfully.", swaps)
}

func (h *Handler) acceptSwap(c *gin.Context) {
	h.decide(c, h.service.Accept, "Swap request accepted.")
}

func (h *Handler) rejectSwap(c *gin.Context) {
	h.decide(c, h.service.Reject, "Swap request rejected.")
}

func (h *Handler) completeSwap(c *gin.Context) {
	h.decide(c, h.service.Complete, "Swap completed.")
}

func (h *Handler) decide(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID) (*SwapResponse, error), message string) {
	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid swap ID format."))
		return
	}
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	swap, svcErr := op(c.Request.Context(), swapID, userID)
	if svcErr != nil {
		common.RespondWithError(c, svcErr)
		return
	}
	common.RespondOK(c, message, swap)
}
