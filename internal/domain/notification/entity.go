package notification

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the normalized status of an outbound SMS
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
	DeliveryInvalid DeliveryStatus = "INVALID_PHONE"
)

// OutboundMessage is the audit record of one SMS dispatch attempt. A row is
// written whether the gateway reports success or an error.
type OutboundMessage struct {
	ID uuid.UUID

	ShipmentID  uuid.UUID
	ClientID    uuid.UUID
	ContainerID uuid.UUID

	Recipient string
	Body      string

	Status DeliveryStatus

	// Gateway-assigned message id, when the send succeeded
	GatewayMessageID *string

	// Gateway error text, when it did not
	Error *string

	CreatedAt time.Time
	SentAt    *time.Time
}

// Notification is the in-app record shown on the dashboard, written
// independently of SMS delivery outcome.
type Notification struct {
	ID uuid.UUID

	ClientID    uuid.UUID
	ShipmentID  *uuid.UUID
	ContainerID *uuid.UUID

	Title   string
	Message string
	ReadAt  *time.Time

	CreatedAt time.Time
}
