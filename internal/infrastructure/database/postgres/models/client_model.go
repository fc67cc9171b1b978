package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientModel represents the database model for Clients
type ClientModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(32);not null;index"`
	Email   *string   `gorm:"type:varchar(255)"`
	Address string    `gorm:"type:text"`
	City    string    `gorm:"type:varchar(100)"`

	// ISO 3166-1 alpha-2
	CountryCode string `gorm:"type:char(2);not null;default:'FR'"`

	RecipientName    string `gorm:"type:varchar(255);not null"`
	RecipientPhone   string `gorm:"type:varchar(32);not null"`
	RecipientAddress string `gorm:"type:text"`
	RecipientCity    string `gorm:"type:varchar(100)"`

	// ISO 3166-1 alpha-2
	RecipientCountryCode string `gorm:"type:char(2);not null;default:'BF'"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ClientModel) TableName() string {
	return "clients"
}
