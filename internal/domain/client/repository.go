package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for client repository operations
type Repository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, clientID uuid.UUID) (*Client, error)
	Update(ctx context.Context, client *Client) error
	List(ctx context.Context, filter *Filter) ([]*Client, int64, error)
}

// Filter represents filtering options for listing clients
type Filter struct {
	CountryCode *string
	Search      string

	Page     int
	PageSize int
}
