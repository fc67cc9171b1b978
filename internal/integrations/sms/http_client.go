package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPClient talks to an SMS gateway over a simple JSON HTTP API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	sender  string
	httpc   *http.Client
}

func NewHTTPClient(baseURL, apiKey, sender string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = "http://localhost:9090"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		sender:  sender,
		httpc: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendRequest struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
	Body string `json:"body"`
}

type sendResponse struct {
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

func (c *HTTPClient) Send(ctx context.Context, to string, body string) (SendResult, error) {
	payload, err := json.Marshal(sendRequest{
		To:   to,
		From: c.sender,
		Body: body,
	})
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, fmt.Errorf("new sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return SendResult{}, fmt.Errorf("sms gateway http %d", resp.StatusCode)
	}

	var r sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return SendResult{}, fmt.Errorf("decode sms response: %w", err)
	}
	if r.Status != "ok" {
		return SendResult{}, fmt.Errorf("sms gateway status=%s: %s", r.Status, r.Error)
	}

	return SendResult{MessageID: r.MessageID}, nil
}
