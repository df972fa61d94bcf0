package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Param fills the notification template's placeholders.
type Param struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Message is one outbound SMS hand-off. The gateway owns the wire format;
// this is only the contract between the queue and its worker.
type Message struct {
	Phones       []string `json:"phones"`
	TemplateCode string   `json:"template_code"`
	SignName     string   `json:"sign_name"`
	Param        Param    `json:"param"`
}

// Client sends a message through an SMS provider.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// GatewayConfig configures the HTTP gateway client.
type GatewayConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
}

// GatewayClient posts messages to an SMS gateway as JSON.
type GatewayClient struct {
	cfg        GatewayConfig
	httpClient *http.Client
}

// NewGatewayClient creates a new gateway client
func NewGatewayClient(cfg GatewayConfig) *GatewayClient {
	return &GatewayClient{
		cfg: cfg,
		// No timeout here: delivery happens on the dedicated queue worker,
		// so a hung call stalls only that worker, never the scan loop.
		httpClient: &http.Client{},
	}
}

type gatewayRequest struct {
	PhoneNumbers  string `json:"phone_numbers"`
	TemplateCode  string `json:"template_code"`
	SignName      string `json:"sign_name"`
	TemplateParam string `json:"template_param"`
	AccessKeyID   string `json:"access_key_id"`
	Timestamp     string `json:"timestamp"`
}

func (c *GatewayClient) Send(ctx context.Context, msg Message) error {
	param, err := json.Marshal(msg.Param)
	if err != nil {
		return fmt.Errorf("failed to marshal template param: %w", err)
	}

	payload, err := json.Marshal(gatewayRequest{
		PhoneNumbers:  strings.Join(msg.Phones, ","),
		TemplateCode:  msg.TemplateCode,
		SignName:      msg.SignName,
		TemplateParam: string(param),
		AccessKeyID:   c.cfg.AccessKeyID,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessKeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
