package postgres

import (
	"context"
	"fmt"
	"time"

	"sahel-cargo/internal/domain/notification"
	"sahel-cargo/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateOutbound(ctx context.Context, msg *notification.OutboundMessage) error {
	msg.ID = uuid.New()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	dbModel := toOutboundModel(msg)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create outbound message: %w", err)
	}

	msg.ID = dbModel.ID
	return nil
}

func (r *NotificationRepository) ListOutboundByContainer(ctx context.Context, containerID uuid.UUID) ([]*notification.OutboundMessage, error) {
	var dbModels []models.OutboundMessageModel

	err := r.db.DB.WithContext(ctx).
		Where("container_id = ?", containerID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list outbound messages: %w", err)
	}

	out := make([]*notification.OutboundMessage, len(dbModels))
	for i := range dbModels {
		out[i] = toOutboundEntity(&dbModels[i])
	}

	return out, nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *notification.Notification) error {
	n.ID = uuid.New()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	dbModel := toNotificationModel(n)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = dbModel.ID
	return nil
}

func (r *NotificationRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var dbModels []models.NotificationModel
	err := r.db.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]*notification.Notification, len(dbModels))
	for i := range dbModels {
		out[i] = toNotificationEntity(&dbModels[i])
	}

	return out, nil
}
