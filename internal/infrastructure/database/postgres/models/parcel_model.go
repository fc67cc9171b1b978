package models

import (
	"time"

	"github.com/google/uuid"
)

// PackageModel represents the database model for Packages
type PackageModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Number string    `gorm:"type:varchar(32);not null;uniqueIndex"`

	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContainerID *uuid.UUID `gorm:"type:uuid;index"`
	ShipmentID  *uuid.UUID `gorm:"type:uuid;index"`

	Status string `gorm:"type:varchar(20);not null;default:'REGISTERED';index"`

	Description string   `gorm:"type:text;not null"`
	WeightKg    *float64 `gorm:"type:decimal(8,2)"`
	Pieces      int      `gorm:"type:integer;not null;default:1"`

	PickupAt   *time.Time `gorm:"type:timestamptz"`
	DeliveryAt *time.Time `gorm:"type:timestamptz"`

	PriceEUR      *float64 `gorm:"type:decimal(10,2)"`
	AmountPaidEUR *float64 `gorm:"type:decimal(10,2)"`
	PaymentStatus string   `gorm:"type:varchar(10);not null;default:'PENDING'"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relations
	Client    *ClientModel    `gorm:"foreignKey:ClientID"`
	Container *ContainerModel `gorm:"foreignKey:ContainerID"`
}

func (PackageModel) TableName() string {
	return "packages"
}

// ShipmentModel represents the database model for Shipments
type ShipmentModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Number string    `gorm:"type:varchar(32);not null;uniqueIndex"`

	ClientID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ContainerID uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relations
	Client    *ClientModel    `gorm:"foreignKey:ClientID"`
	Container *ContainerModel `gorm:"foreignKey:ContainerID"`
	Packages  []PackageModel  `gorm:"foreignKey:ShipmentID"`
}

func (ShipmentModel) TableName() string {
	return "shipments"
}
