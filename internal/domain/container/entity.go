package container

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a shipping container
type Status string

const (
	StatusPreparation Status = "PREPARATION" // Being filled at the departure warehouse
	StatusLoaded      Status = "LOADED"      // Sealed and loaded for departure
	StatusInTransit   Status = "IN_TRANSIT"  // On the road / at sea
	StatusCustoms     Status = "CUSTOMS"     // Customs clearance at destination
	StatusDelivered   Status = "DELIVERED"   // Arrived at the destination warehouse
	StatusCancelled   Status = "CANCELLED"   // Cancelled before completion
)

// Container represents a shipping container on the France - Burkina Faso route
type Container struct {
	ID uuid.UUID

	// Human-readable number, e.g. CNT202501001
	Number string

	Status          Status
	CurrentLocation string

	// Timing
	PlannedDepartureAt *time.Time
	ActualDepartureAt  *time.Time
	PlannedArrivalAt   *time.Time
	ActualArrivalAt    *time.Time

	// Metadata
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	// Tracking history, most recent first
	Updates []TrackingUpdate
}

// TrackingUpdate is one entry in a container's tracking history. Rows are
// immutable once created; the most recent public one is "current" on the
// tracking page.
type TrackingUpdate struct {
	ID          uuid.UUID
	ContainerID uuid.UUID

	Location    string
	Description string
	Latitude    *float64
	Longitude   *float64

	// Internal updates (e.g. GPS position feeds) never reach the public
	// tracking page or trigger client notifications.
	IsPublic bool

	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// LatestUpdate returns the most recent tracking update, or nil when the
// container has no history yet. Updates are kept ordered most recent first.
func (c *Container) LatestUpdate() *TrackingUpdate {
	if len(c.Updates) == 0 {
		return nil
	}
	return &c.Updates[0]
}

// LatestPublicUpdate returns the most recent publicly visible update.
func (c *Container) LatestPublicUpdate() *TrackingUpdate {
	for i := range c.Updates {
		if c.Updates[i].IsPublic {
			return &c.Updates[i]
		}
	}
	return nil
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Valid reports whether s is one of the known container statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPreparation, StatusLoaded, StatusInTransit, StatusCustoms, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
