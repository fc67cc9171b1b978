package client

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a sender together with the recipient identity used for
// delivery. The recipient's phone is the SMS notification target and its ISO
// country code drives phone normalization.
type Client struct {
	ID uuid.UUID

	// Sender identity (usually in France)
	Name    string
	Phone   string
	Email   *string
	Address string
	City    string

	// ISO 3166-1 alpha-2, e.g. "FR"
	CountryCode string

	// Recipient identity (usually in Burkina Faso)
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	RecipientCity    string

	// ISO 3166-1 alpha-2, e.g. "BF"
	RecipientCountryCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}
