package client

import (
	"time"

	domainClient "sahel-cargo/internal/domain/client"

	"github.com/google/uuid"
)

// Request DTOs
type CreateClientRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Phone       string  `json:"phone" validate:"required,min=6,max=32"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     string  `json:"address" validate:"omitempty,max=500"`
	City        string  `json:"city" validate:"omitempty,max=100"`
	CountryCode string  `json:"country_code" validate:"required,iso3166_1_alpha2"`

	RecipientName        string `json:"recipient_name" validate:"required,min=2,max=255"`
	RecipientPhone       string `json:"recipient_phone" validate:"required,min=6,max=32"`
	RecipientAddress     string `json:"recipient_address" validate:"omitempty,max=500"`
	RecipientCity        string `json:"recipient_city" validate:"omitempty,max=100"`
	RecipientCountryCode string `json:"recipient_country_code" validate:"required,iso3166_1_alpha2"`
}

type UpdateClientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,min=6,max=32"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	CountryCode *string `json:"country_code" validate:"omitempty,iso3166_1_alpha2"`

	RecipientName        *string `json:"recipient_name" validate:"omitempty,min=2,max=255"`
	RecipientPhone       *string `json:"recipient_phone" validate:"omitempty,min=6,max=32"`
	RecipientAddress     *string `json:"recipient_address" validate:"omitempty,max=500"`
	RecipientCity        *string `json:"recipient_city" validate:"omitempty,max=100"`
	RecipientCountryCode *string `json:"recipient_country_code" validate:"omitempty,iso3166_1_alpha2"`
}

type ListClientsQuery struct {
	CountryCode string `form:"country_code"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// Response DTOs
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	CountryCode string    `json:"country_code"`

	RecipientName        string `json:"recipient_name"`
	RecipientPhone       string `json:"recipient_phone"`
	RecipientAddress     string `json:"recipient_address,omitempty"`
	RecipientCity        string `json:"recipient_city,omitempty"`
	RecipientCountryCode string `json:"recipient_country_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToClientResponse(c *domainClient.Client) *ClientResponse {
	return &ClientResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Phone:                c.Phone,
		Email:                c.Email,
		Address:              c.Address,
		City:                 c.City,
		CountryCode:          c.CountryCode,
		RecipientName:        c.RecipientName,
		RecipientPhone:       c.RecipientPhone,
		RecipientAddress:     c.RecipientAddress,
		RecipientCity:        c.RecipientCity,
		RecipientCountryCode: c.RecipientCountryCode,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}
