package handler

import (
	"net/http"

	"sahel-cargo/internal/usecase/tracking"
	"sahel-cargo/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TrackingHandler serves the public tracking lookup. No authentication,
// callers only need a package or shipment number.
type TrackingHandler struct {
	service *tracking.Service
}

func NewTrackingHandler(service *tracking.Service) *TrackingHandler {
	return &TrackingHandler{service: service}
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tracking/:number", h.Lookup)
}

func (h *TrackingHandler) Lookup(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Tracking number is required")
		return
	}

	result, err := h.service.Lookup(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Tracking information retrieved", result)
}
