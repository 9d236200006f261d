// File: internal/car/handler.go
package car

import (
	"errors"

	"carmarket_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for car listings.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new car handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("CarHandler")}
}

// RegisterRoutes sets up the routes for car operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, optionalAuthMW, authMW, adminRoleMW gin.HandlerFunc) {
	cars := router.Group("/cars")
	{
		cars.GET("", h.browse)
		cars.GET("/:identifier", optionalAuthMW, h.getCar)

		authed := cars.Group("")
		authed.Use(authMW)
		{
			authed.POST("", h.createCar)
			authed.GET("/me/listings", h.listMyCars)
			authed.PUT("/:identifier", h.updateCar)
			authed.DELETE("/:identifier", h.deleteCar)
			authed.POST("/:identifier/sold", h.markSold)
		}

		admin := cars.Group("/admin")
		admin.Use(authMW, adminRoleMW)
		{
			admin.GET("/pending", h.listPending)
			admin.POST("/:identifier/approve", h.approveCar)
			admin.DELETE("/:identifier", h.rejectCar)
		}
	}
}

func (h *Handler) browse(c *gin.Context) {
	var query BrowseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid browse parameters: "+err.Error()))
		return
	}

	cars, err := h.service.Browse(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Cars retrieved successfully.", cars)
}

func (h *Handler) getCar(c *gin.Context) {
	viewerID := common.GetUserIDFromContext(c)
	viewerRole := common.GetUserRoleFromContext(c)

	car, err := h.service.GetByIdentifier(c.Request.Context(), c.Param("identifier"), viewerID, viewerRole)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car retrieved successfully.", car)
}

func (h *Handler) listMyCars(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	cars, svcErr := h.service.ListByOwner(c.Request.Context(), userID)
	if svcErr != nil {
		common.RespondWithError(c, svcErr)
		return
	}
	common.RespondOK(c, "Your listings retrieved successfully.", cars)
}

func (h *Handler) createCar(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	car, svcErr := h.service.Create(c.Request.Context(), userID, req)
	if svcErr != nil {
		common.RespondWithError(c, svcErr)
		return
	}
	common.RespondCreated(c, "Car listing submitted for review.", car)
}

func (h *Handler) updateCar(c *gin.Context) {
	carID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}
	userRole := common.GetUserRoleFromContext(c)

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(validationErrors)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	car, svcErr := h.service.Update(c.Request.Context(), carID, userID, userRole, req)
	if svcErr != nil {
		common.RespondWithError(c, svcErr)
		return
	}
	common.RespondOK(c, "Car listing updated successfully.", car)
}

func (h *Handler) deleteCar(c *gin.Context) {
	carID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}
	userRole := common.GetUserRoleFromContext(c)

	if svcErr := h.service.Delete(c.Request.Context(), carID, userID, userRole); svcErr != nil {
		common.RespondWithError(c, svcErr)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) markSold(c *gin.Context) {
	carID, ok := h.parseID(c)
	if !ok {
		return
	}
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("User ID not found in token."))
		return
	}
	userRole := common.GetUserRoleFromContext(c)

	car, svcErr := h.service.MarkSold(c.Request.Context(), carID, userID, userRole)
	if svcErr != nil {
		common.RespondWithError(c, svcErr)
		return
	}
	common.RespondOK(c, "Car marked as sold.", car)
}

func (h *Handler) listPending(c *gin.Context) {
	cars, err := h.service.AdminListPending(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Pending listings retrieved successfully.", cars)
}

func (h *Handler) approveCar(c *gin.Context) {
	carID, ok := h.parseID(c)
	if !ok {
		return
	}
	car, err := h.service.AdminApprove(c.Request.Context(), carID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car listing approved.", car)
}

func (h *Handler) rejectCar(c *gin.Context) {
	carID, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.AdminReject(c.Request.Context(), carID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Car listing rejected.", nil)
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("identifier"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid car ID format."))
		return uuid.Nil, false
	}
	return id, true
}
