// Package notify delivers order-ready notifications over WhatsApp and SMS,
// with redis-backed dedupe, per-attempt logging and an admin alert channel
// for orders that could not be reached at all.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"apteka_notify_backend/platform/config"
)

// Channel is one outbound notification transport. Send returns the remote
// message ID on success.
type Channel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, phone, message string) (string, error)
}

// WhatsAppClient sends messages through the Green-API gateway.
type WhatsAppClient struct {
	cfg        config.WhatsAppConfig
	baseURL    string
	httpClient *http.Client
}

func NewWhatsAppClient(cfg config.WhatsAppConfig) *WhatsAppClient {
	return &WhatsAppClient{
		cfg:        cfg,
		baseURL:    "https://api.green-api.com",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *WhatsAppClient) Name() string  { return "whatsapp" }
func (c *WhatsAppClient) Enabled() bool { return c.cfg.IsWhatsAppEnabled() }

type greenAPIRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type greenAPIResponse struct {
	IDMessage string `json:"idMessage"`
}

// Send posts one message. The chat ID is the bare digits of the phone with
// the @c.us suffix Green-API expects.
func (c *WhatsAppClient) Send(ctx context.Context, phone, message string) (string, error) {
	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s",
		c.baseURL, c.cfg.GetGreenAPIInstanceID(), c.cfg.GetGreenAPIToken())

	payload, err := json.Marshal(greenAPIRequest{
		ChatID:  strings.TrimPrefix(phone, "+") + "@c.us",
		Message: message,
	})
	if err != nil {
		return "", fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whatsapp send: HTTP %d: %s", resp.StatusCode, body)
	}

	var result greenAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode whatsapp response: %w", err)
	}
	if result.IDMessage == "" {
		return "", fmt.Errorf("whatsapp send rejected: %s", body)
	}

	return result.IDMessage, nil
}
