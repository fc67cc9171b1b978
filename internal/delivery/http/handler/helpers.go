package handler

import (
	"errors"
	"net/http"

	domainClient "sahel-cargo/internal/domain/client"
	domainContainer "sahel-cargo/internal/domain/container"
	domainParcel "sahel-cargo/internal/domain/parcel"
	domainUser "sahel-cargo/internal/domain/user"
	"sahel-cargo/internal/middleware"
	"sahel-cargo/internal/usecase/tracking"
	appErrors "sahel-cargo/pkg/errors"
	"sahel-cargo/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainContainer.ErrContainerNotFound),
		errors.Is(err, domainContainer.ErrUpdateNotFound),
		errors.Is(err, domainParcel.ErrPackageNotFound),
		errors.Is(err, domainParcel.ErrShipmentNotFound),
		errors.Is(err, domainClient.ErrClientNotFound),
		errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, tracking.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainContainer.ErrInvalidStatusTransition),
		errors.Is(err, domainParcel.ErrInvalidStatusTransition),
		errors.Is(err, domainParcel.ErrPackageAlreadyAssigned),
		errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// actingUser pulls the authenticated operator's id from the context.
func actingUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
