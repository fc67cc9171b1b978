package container

import (
	"time"

	domainContainer "sahel-cargo/internal/domain/container"

	"github.com/google/uuid"
)

// Request DTOs
type CreateContainerRequest struct {
	CurrentLocation    string     `json:"current_location" validate:"omitempty,max=255"`
	PlannedDepartureAt *time.Time `json:"planned_departure_at" validate:"omitempty"`
	PlannedArrivalAt   *time.Time `json:"planned_arrival_at" validate:"omitempty"`
}

type UpdateContainerRequest struct {
	CurrentLocation    *string    `json:"current_location" validate:"omitempty,max=255"`
	PlannedDepartureAt *time.Time `json:"planned_departure_at" validate:"omitempty"`
	PlannedArrivalAt   *time.Time `json:"planned_arrival_at" validate:"omitempty"`
}

type AddUpdateRequest struct {
	Location    string   `json:"location" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"required,min=2,max=1000"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Internal    bool     `json:"internal"`
}

type SetStatusRequest struct {
	Status   string `json:"status" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=255"`

	// Force bypasses transition validation for operator corrections.
	Force bool `json:"force"`
}

type ListContainersQuery struct {
	Status    string `form:"status"`
	Search    string `form:"search"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at number status planned_departure_at planned_arrival_at"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type TrackingUpdateResponse struct {
	ID          uuid.UUID `json:"id"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

type ContainerResponse struct {
	ID                 uuid.UUID                `json:"id"`
	Number             string                   `json:"number"`
	Status             string                   `json:"status"`
	CurrentLocation    string                   `json:"current_location,omitempty"`
	PlannedDepartureAt *time.Time               `json:"planned_departure_at,omitempty"`
	ActualDepartureAt  *time.Time               `json:"actual_departure_at,omitempty"`
	PlannedArrivalAt   *time.Time               `json:"planned_arrival_at,omitempty"`
	ActualArrivalAt    *time.Time               `json:"actual_arrival_at,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	Updates            []TrackingUpdateResponse `json:"updates,omitempty"`
}

type NotificationReport struct {
	Total         int      `json:"total"`
	Success       int      `json:"success"`
	Errors        int      `json:"errors"`
	InvalidPhones int      `json:"invalid_phones"`
	ErrorDetails  []string `json:"error_details,omitempty"`
}

type AddUpdateResponse struct {
	Update        TrackingUpdateResponse `json:"update"`
	Notifications *NotificationReport    `json:"notifications,omitempty"`
}

func ToTrackingUpdateResponse(u *domainContainer.TrackingUpdate) TrackingUpdateResponse {
	return TrackingUpdateResponse{
		ID:          u.ID,
		Location:    u.Location,
		Description: u.Description,
		Latitude:    u.Latitude,
		Longitude:   u.Longitude,
		IsPublic:    u.IsPublic,
		CreatedAt:   u.CreatedAt,
	}
}

func ToContainerResponse(c *domainContainer.Container) *ContainerResponse {
	resp := &ContainerResponse{
		ID:                 c.ID,
		Number:             c.Number,
		Status:             string(c.Status),
		CurrentLocation:    c.CurrentLocation,
		PlannedDepartureAt: c.PlannedDepartureAt,
		ActualDepartureAt:  c.ActualDepartureAt,
		PlannedArrivalAt:   c.PlannedArrivalAt,
		ActualArrivalAt:    c.ActualArrivalAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	for i := range c.Updates {
		resp.Updates = append(resp.Updates, ToTrackingUpdateResponse(&c.Updates[i]))
	}
	return resp
}
