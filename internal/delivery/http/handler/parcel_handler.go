package handler

import (
	"net/http"

	usecaseParcel "sahel-cargo/internal/usecase/parcel"
	"sahel-cargo/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ParcelHandler struct {
	service *usecaseParcel.Service
}

func NewParcelHandler(service *usecaseParcel.Service) *ParcelHandler {
	return &ParcelHandler{service: service}
}

func (h *ParcelHandler) RegisterRoutes(router *gin.RouterGroup) {
	packages := router.Group("/packages")
	{
		packages.POST("", h.CreatePackage)
		packages.GET("", h.ListPackages)
		packages.GET("/:id", h.GetPackage)
		packages.PUT("/:id", h.UpdatePackage)
		packages.POST("/:id/collect", h.MarkCollected)
		packages.POST("/:id/assign", h.AssignContainer)
		packages.POST("/:id/status", h.SetStatus)
		packages.POST("/:id/payments", h.RecordPayment)
	}

	shipments := router.Group("/shipments")
	{
		shipments.POST("", h.CreateShipment)
		shipments.GET("/:id", h.GetShipment)
	}
}

func (h *ParcelHandler) CreatePackage(c *gin.Context) {
	var req usecaseParcel.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	result, err := h.service.CreatePackage(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Package registered successfully", result)
}

func (h *ParcelHandler) GetPackage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetPackageByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Package retrieved successfully", result)
}

func (h *ParcelHandler) ListPackages(c *gin.Context) {
	var query usecaseParcel.ListPackagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	results, total, err := h.service.ListPackages(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Packages retrieved successfully", gin.H{
		"packages": results,
		"total":    total,
	})
}

func (h *ParcelHandler) UpdatePackage(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseParcel.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdatePackage(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Package updated successfully", result)
}

func (h *ParcelHandler) MarkCollected(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseParcel.MarkCollectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.MarkCollected(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Package collected", result)
}

func (h *ParcelHandler) AssignContainer(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseParcel.AssignContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.AssignToContainer(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Package assigned to container", result)
}

func (h *ParcelHandler) SetStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseParcel.SetPackageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SetStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Package status updated", result)
}

func (h *ParcelHandler) RecordPayment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req usecaseParcel.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.RecordPayment(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Payment recorded", result)
}

func (h *ParcelHandler) CreateShipment(c *gin.Context) {
	var req usecaseParcel.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := actingUser(c)
	if !ok {
		return
	}

	result, err := h.service.CreateShipment(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", result)
}

func (h *ParcelHandler) GetShipment(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetShipmentByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", result)
}
