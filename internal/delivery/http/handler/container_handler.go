package handler

import (
	"net/http"

	usecaseContainer "sahel-cargo/internal/usecase/container"
	"sahel-cargo/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ContainerHandler struct {
	service *usecaseContainer.Service
}

func NewContainerHandler(service *usecaseContainer.Service) *ContainerHandler {
	return &ContainerHandler{service: service}
}

func (h *ContainerHandler) RegisterRoutes(router *gin.RouterGroup) {
	containers := router.Group("/containers")
	{
		containers.POST("", h.Create)
		containers.GET("", h.List)
		containers.GET("/:id", h.Get)
		containers.PUT("/:id", h.Update)
		containers.POST("/:id/updates", h.AddUpdate)
		containers.POST("/number/:number/status", h.SetStatus)
	}
}

func (h *ContainerHandler) Create(c *gin.Context) {
	var req usecaseContainer.CreateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Container created successfully", result)
}

func (h *ContainerHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Container retrieved successfully", result)
}

func (h *ContainerHandler) List(c *gin.Context) {
	var query usecaseContainer.ListContainersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	results, total, err := h.service.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Containers retrieved successfully", gin.H{
		"containers": results,
		"total":      total,
	})
}

func (h *ContainerHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseContainer.UpdateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Container updated successfully", result)
}

func (h *ContainerHandler) AddUpdate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseContainer.AddUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	result, err := h.service.AddTrackingUpdate(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Tracking update recorded", result)
}

func (h *ContainerHandler) SetStatus(c *gin.Context) {
	number := c.Param("number")

	var req usecaseContainer.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	result, err := h.service.SetStatus(c.Request.Context(), number, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Container status updated", result)
}
