package parcel

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for package and shipment repository operations
type Repository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, packageID uuid.UUID) (*Package, error)
	GetByNumber(ctx context.Context, number string) (*Package, error)
	Update(ctx context.Context, pkg *Package) error
	UpdateStatus(ctx context.Context, packageID uuid.UUID, status Status) error
	AssignContainer(ctx context.Context, packageID, containerID uuid.UUID) error
	SetPickup(ctx context.Context, packageID uuid.UUID, at time.Time) error
	SetDelivery(ctx context.Context, packageID uuid.UUID, at time.Time) error
	List(ctx context.Context, filter *Filter) ([]*Package, int64, error)
	ListByContainer(ctx context.Context, containerID uuid.UUID) ([]*Package, error)

	CreateShipment(ctx context.Context, shipment *Shipment) error
	GetShipmentByID(ctx context.Context, shipmentID uuid.UUID) (*Shipment, error)
	GetShipmentByNumber(ctx context.Context, number string) (*Shipment, error)
	ListShipmentsByContainer(ctx context.Context, containerID uuid.UUID) ([]*Shipment, error)
}

// Filter represents filtering options for listing packages
type Filter struct {
	Status      *Status
	ClientID    *uuid.UUID
	ContainerID *uuid.UUID
	Search      string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
