package sms

import (
	"context"
)

// SendResult carries the gateway's acknowledgement for a single message.
type SendResult struct {
	// MessageID is the gateway-side identifier, kept for delivery audits.
	MessageID string
}

// Gateway sends a single SMS to an E.164 phone number.
type Gateway interface {
	Send(ctx context.Context, to string, body string) (SendResult, error)
}
