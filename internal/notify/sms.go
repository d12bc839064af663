package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"apteka_notify_backend/platform/config"
)

// SMSClient sends messages through the smstext.app gateway.
type SMSClient struct {
	cfg        config.SMSConfig
	baseURL    string
	httpClient *http.Client
}

func NewSMSClient(cfg config.SMSConfig) *SMSClient {
	return &SMSClient{
		cfg:        cfg,
		baseURL:    "https://api.smstext.app",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *SMSClient) Name() string  { return "sms" }
func (c *SMSClient) Enabled() bool { return c.cfg.IsSMSEnabled() }

type smsMessage struct {
	Mobile string `json:"mobile"`
	Text   string `json:"text"`
}

// Send posts one SMS. The gateway takes a JSON array of messages with Basic
// auth over the literal "apikey" user, and answers with an array of message
// IDs in the same order.
func (c *SMSClient) Send(ctx context.Context, phone, message string) (string, error) {
	if phone != "" && phone[0] != '+' {
		phone = "+" + phone
	}

	payload, err := json.Marshal([]smsMessage{{Mobile: phone, Text: message}})
	if err != nil {
		return "", fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/push", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build sms request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte("apikey:" + c.cfg.GetSMSGatewayAPIKey()))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sms send: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sms send: HTTP %d: %s", resp.StatusCode, body)
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil || len(ids) == 0 {
		return "", fmt.Errorf("sms send rejected: %s", body)
	}

	return ids[0], nil
}
