package parcel

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle status of a package
type Status string

const (
	StatusRegistered  Status = "REGISTERED"   // Declared by the sender
	StatusCollected   Status = "COLLECTED"    // Picked up or dropped off
	StatusInContainer Status = "IN_CONTAINER" // Assigned to a container
	StatusInTransit   Status = "IN_TRANSIT"   // Container departed
	StatusCustoms     Status = "CUSTOMS"      // Customs clearance
	StatusDelivered   Status = "DELIVERED"    // Handed to the recipient
	StatusReturned    Status = "RETURNED"     // Sent back to the sender
	StatusCancelled   Status = "CANCELLED"    // Cancelled before shipping
)

// PaymentStatus tracks how much of the shipping fee has been paid
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// Package represents a single parcel registered by a client
type Package struct {
	ID uuid.UUID

	// Human-readable number, e.g. PKG202501042
	Number string

	ClientID    uuid.UUID
	ContainerID *uuid.UUID
	ShipmentID  *uuid.UUID

	Status Status

	Description string
	WeightKg    *float64
	Pieces      int

	// Timing
	PickupAt   *time.Time
	DeliveryAt *time.Time

	// Payment
	PriceEUR      *float64
	AmountPaidEUR *float64
	PaymentStatus PaymentStatus

	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shipment groups one or more packages of a single client travelling in the
// same container. Notifications fan out per shipment, not per package.
type Shipment struct {
	ID uuid.UUID

	// Human-readable number, e.g. EXP202501017
	Number string

	ClientID    uuid.UUID
	ContainerID uuid.UUID

	PackageIDs []uuid.UUID

	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned || s == StatusCancelled
}

// Valid reports whether s is one of the known package statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusRegistered, StatusCollected, StatusInContainer, StatusInTransit,
		StatusCustoms, StatusDelivered, StatusReturned, StatusCancelled:
		return true
	}
	return false
}
