package models

import (
	"time"

	"github.com/google/uuid"
)

// ContainerModel represents the database model for Containers
type ContainerModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Number          string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Status          string    `gorm:"type:varchar(20);not null;default:'PREPARATION';index"`
	CurrentLocation string    `gorm:"type:varchar(255)"`

	PlannedDepartureAt *time.Time `gorm:"type:timestamptz"`
	ActualDepartureAt  *time.Time `gorm:"type:timestamptz"`
	PlannedArrivalAt   *time.Time `gorm:"type:timestamptz"`
	ActualArrivalAt    *time.Time `gorm:"type:timestamptz"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	// Relations
	Updates []TrackingUpdateModel `gorm:"foreignKey:ContainerID"`
}

func (ContainerModel) TableName() string {
	return "containers"
}

// TrackingUpdateModel represents the database model for TrackingUpdates
type TrackingUpdateModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContainerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Location    string   `gorm:"type:varchar(255);not null"`
	Description string   `gorm:"type:text;not null"`
	Latitude    *float64 `gorm:"type:decimal(9,6)"`
	Longitude   *float64 `gorm:"type:decimal(9,6)"`
	IsPublic    bool     `gorm:"not null;default:true;index"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null;index"`

	Container *ContainerModel `gorm:"foreignKey:ContainerID"`
}

func (TrackingUpdateModel) TableName() string {
	return "tracking_updates"
}
