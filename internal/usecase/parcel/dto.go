package parcel

import (
	"time"

	domainParcel "sahel-cargo/internal/domain/parcel"

	"github.com/google/uuid"
)

// Request DTOs
type CreatePackageRequest struct {
	ClientID    uuid.UUID `json:"client_id" validate:"required,uuid"`
	Description string    `json:"description" validate:"required,min=2,max=1000"`
	WeightKg    *float64  `json:"weight_kg" validate:"omitempty,gt=0,max=10000"`
	Pieces      int       `json:"pieces" validate:"omitempty,min=1,max=1000"`
	PriceEUR    *float64  `json:"price_eur" validate:"omitempty,min=0"`
}

type UpdatePackageRequest struct {
	Description *string  `json:"description" validate:"omitempty,min=2,max=1000"`
	WeightKg    *float64 `json:"weight_kg" validate:"omitempty,gt=0,max=10000"`
	Pieces      *int     `json:"pieces" validate:"omitempty,min=1,max=1000"`
	PriceEUR    *float64 `json:"price_eur" validate:"omitempty,min=0"`
}

type MarkCollectedRequest struct {
	PickupAt *time.Time `json:"pickup_at" validate:"omitempty"`
}

type AssignContainerRequest struct {
	ContainerID uuid.UUID `json:"container_id" validate:"required,uuid"`
}

type SetPackageStatusRequest struct {
	Status string `json:"status" validate:"required"`

	// Force bypasses transition validation for operator corrections.
	Force bool `json:"force"`
}

type RecordPaymentRequest struct {
	AmountEUR float64 `json:"amount_eur" validate:"required,gt=0"`
}

type CreateShipmentRequest struct {
	PackageIDs []uuid.UUID `json:"package_ids" validate:"required,min=1,dive,required"`
}

type ListPackagesQuery struct {
	Status      string `form:"status"`
	ClientID    string `form:"client_id"`
	ContainerID string `form:"container_id"`
	Search      string `form:"search"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy      string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at number status price_eur pickup_at delivery_at"`
	SortOrder   string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type PackageResponse struct {
	ID          uuid.UUID  `json:"id"`
	Number      string     `json:"number"`
	ClientID    uuid.UUID  `json:"client_id"`
	ContainerID *uuid.UUID `json:"container_id,omitempty"`
	ShipmentID  *uuid.UUID `json:"shipment_id,omitempty"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	WeightKg    *float64   `json:"weight_kg,omitempty"`
	Pieces      int        `json:"pieces"`
	PickupAt    *time.Time `json:"pickup_at,omitempty"`
	DeliveryAt  *time.Time `json:"delivery_at,omitempty"`

	PriceEUR      *float64 `json:"price_eur,omitempty"`
	AmountPaidEUR *float64 `json:"amount_paid_eur,omitempty"`
	PaymentStatus string   `json:"payment_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShipmentResponse struct {
	ID          uuid.UUID   `json:"id"`
	Number      string      `json:"number"`
	ClientID    uuid.UUID   `json:"client_id"`
	ContainerID uuid.UUID   `json:"container_id"`
	PackageIDs  []uuid.UUID `json:"package_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

func ToPackageResponse(p *domainParcel.Package) *PackageResponse {
	return &PackageResponse{
		ID:            p.ID,
		Number:        p.Number,
		ClientID:      p.ClientID,
		ContainerID:   p.ContainerID,
		ShipmentID:    p.ShipmentID,
		Status:        string(p.Status),
		Description:   p.Description,
		WeightKg:      p.WeightKg,
		Pieces:        p.Pieces,
		PickupAt:      p.PickupAt,
		DeliveryAt:    p.DeliveryAt,
		PriceEUR:      p.PriceEUR,
		AmountPaidEUR: p.AmountPaidEUR,
		PaymentStatus: string(p.PaymentStatus),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToShipmentResponse(s *domainParcel.Shipment) *ShipmentResponse {
	return &ShipmentResponse{
		ID:          s.ID,
		Number:      s.Number,
		ClientID:    s.ClientID,
		ContainerID: s.ContainerID,
		PackageIDs:  s.PackageIDs,
		CreatedAt:   s.CreatedAt,
	}
}
