// File: internal/chat/handler.go
package chat

import (
	"errors"

	"carmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for conversations.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new chat handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("ChatHandler")}
}

// RegisterRoutes sets up the routes for chat operations. All chat routes
// require authentication.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	chats := router.Group("/chats")
	chats.Use(authMW)
	{
		chats.GET("", h.listChats)
		chats.POST("", h.openChat)
		chats.GET("/:id", h.getChat)
		chats.POST("/:id/messages", h.sendMessage)
		chats.POST("/:id/read", h.markRead)
	}
}

func (h *Handler) listChats(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	chats, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversations retrieved successfully.", chats)
}

func (h *Handler) openChat(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	var req OpenChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	chat, err := h.service.Open(c.Request.Context(), userID, req.PeerID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversation ready.", chat)
}

func (h *Handler) getChat(c *gin.Context) {
	chatID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)

	chat, err := h.service.GetMessages(c.Request.Context(), chatID, userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversation retrieved successfully.", chat)
}

func (h *Handler) sendMessage(c *gin.Context) {
	chatID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), chatID, userID, req.Content)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Message sent.", message)
}

func (h *Handler) markRead(c *gin.Context) {
	chatID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)

	if err := h.service.MarkRead(c.Request.Context(), chatID, userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Conversation marked as read.", nil)
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid conversation ID format."))
		return uuid.Nil, false
	}
	return id, true
}
