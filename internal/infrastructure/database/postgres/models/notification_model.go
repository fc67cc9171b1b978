package models

import (
	"time"

	"github.com/google/uuid"
)

// OutboundMessageModel represents the database model for OutboundMessages
type OutboundMessageModel struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ContainerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Recipient string `gorm:"type:varchar(32);not null"`
	Body      string `gorm:"type:text;not null"`
	Status    string `gorm:"type:varchar(20);not null;index"`

	GatewayMessageID *string `gorm:"type:varchar(128)"`
	Error            *string `gorm:"type:text"`

	CreatedAt time.Time  `gorm:"not null;index"`
	SentAt    *time.Time `gorm:"type:timestamptz"`
}

func (OutboundMessageModel) TableName() string {
	return "outbound_messages"
}

// NotificationModel represents the database model for in-app Notifications
type NotificationModel struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`

	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShipmentID  *uuid.UUID `gorm:"type:uuid;index"`
	ContainerID *uuid.UUID `gorm:"type:uuid;index"`

	Title   string     `gorm:"type:varchar(255);not null"`
	Message string     `gorm:"type:text;not null"`
	ReadAt  *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;index"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
