package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

//go:generate mockgen -source=client.go -destination=mock/sender_mock.go -package=mock_waha

// Sender is the outbound side of the WhatsApp HTTP API.
type Sender interface {
	SendText(ctx context.Context, session, chatID, text string) error
	SendSeen(ctx context.Context, session, chatID string) error
	StartTyping(ctx context.Context, session, chatID string) error
	StopTyping(ctx context.Context, session, chatID string) error
}

// Client calls a WAHA server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client. timeout bounds every request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer from WAHA.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("waha API error [%d] %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

type chatRequest struct {
	Session string `json:"session"`
	ChatID  string `json:"chatId"`
	Text    string `json:"text,omitempty"`
}

func (c *Client) SendText(ctx context.Context, session, chatID, text string) error {
	return c.post(ctx, "/api/sendText", chatRequest{Session: session, ChatID: chatID, Text: text})
}

func (c *Client) SendSeen(ctx context.Context, session, chatID string) error {
	return c.post(ctx, "/api/sendSeen", chatRequest{Session: session, ChatID: chatID})
}

func (c *Client) StartTyping(ctx context.Context, session, chatID string) error {
	return c.post(ctx, "/api/startTyping", chatRequest{Session: session, ChatID: chatID})
}

func (c *Client) StopTyping(ctx context.Context, session, chatID string) error {
	return c.post(ctx, "/api/stopTyping", chatRequest{Session: session, ChatID: chatID})
}

func (c *Client) post(ctx context.Context, endpoint string, body chatRequest) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: string(snippet)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
