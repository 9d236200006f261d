// File: internal/user/handler.go
package user

import (
	"errors"

	"carmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for user operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc, adminRoleMW gin.HandlerFunc) {
	userGroup := router.Group("/users")
	{
		authedGroup := userGroup.Group("")
		authedGroup.Use(authMW)
		{
			authedGroup.GET("/me", h.getProfile)
			authedGroup.PUT("/me", h.updateProfile)
		}

		adminGroup := userGroup.Group("/admin")
		adminGroup.Use(authMW)
		adminGroup.Use(adminRoleMW)
		{
			adminGroup.GET("", h.adminListUsers)
		}
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User not authenticated."))
		return
	}
	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", ToUserResponse(u))
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User not authenticated."))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update profile: Invalid request body", zap.Error(err), zap.String("userID", userID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToUserResponse(u))
}

func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.service.AdminListUsers(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	common.RespondOK(c, "Users retrieved successfully.", responses)
}
