package notification

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for notification audit storage
type Repository interface {
	CreateOutbound(ctx context.Context, msg *OutboundMessage) error
	ListOutboundByContainer(ctx context.Context, containerID uuid.UUID) ([]*OutboundMessage, error)

	CreateNotification(ctx context.Context, n *Notification) error
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*Notification, error)
}
