package container

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for container repository operations
type Repository interface {
	Create(ctx context.Context, container *Container) error
	GetByID(ctx context.Context, containerID uuid.UUID) (*Container, error)
	GetByNumber(ctx context.Context, number string) (*Container, error)
	Update(ctx context.Context, container *Container) error
	UpdateStatus(ctx context.Context, containerID uuid.UUID, status Status, location string) error
	SetActualDeparture(ctx context.Context, containerID uuid.UUID, at time.Time) error
	SetActualArrival(ctx context.Context, containerID uuid.UUID, at time.Time) error
	List(ctx context.Context, filter *Filter) ([]*Container, int64, error)

	CreateUpdate(ctx context.Context, update *TrackingUpdate) error
	ListUpdates(ctx context.Context, containerID uuid.UUID, publicOnly bool) ([]TrackingUpdate, error)
}

// Filter represents filtering options for listing containers
type Filter struct {
	Status          *Status
	DepartureAfter  *time.Time
	DepartureBefore *time.Time
	Search          string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
