// Package wppconnect sends text messages through a local WPPConnect server.
package wppconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	commonhttp "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/http"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/metrics"
)

// longMessageThreshold is the length above which WPPConnect wants the message
// flagged as a full-format send.
const longMessageThreshold = 160

type Client struct {
	baseURL    string
	httpClient *commonhttp.Client
	sendDelay  time.Duration
	logger     logger.Logger
}

type sendMessageRequest struct {
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	WaitForAck bool   `json:"waitForAck"`
	Format     string `json:"format,omitempty"`
}

func NewClient(baseURL string, timeout, sendDelay time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: commonhttp.NewClient(timeout),
		sendDelay:  sendDelay,
		logger: log.WithFields(map[string]interface{}{
			"component": "wppconnect",
		}),
	}
}

// SendText delivers one text message. A short delay before the send keeps the
// WhatsApp session from being flagged for flooding.
func (c *Client) SendText(ctx context.Context, phone, text string) error {
	if c.sendDelay > 0 {
		select {
		case <-time.After(c.sendDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	payload := sendMessageRequest{
		Phone:      phone,
		Message:    text,
		WaitForAck: true,
	}
	if len(text) > longMessageThreshold {
		payload.Format = "full"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send-message payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/send-message", bytes.NewBuffer(body))
	if err != nil {
		return commonerrors.NewUpstreamUnavailableError("wppconnect", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("wppconnect", "transport_error").Inc()
		return commonerrors.NewUpstreamUnavailableError("wppconnect", err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues("wppconnect", fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return commonerrors.NewUpstreamUnavailableError("wppconnect",
			fmt.Errorf("send-message status %d: %s", resp.StatusCode, string(respBody)))
	}

	c.logger.Info("message sent", map[string]interface{}{
		"to":    phone,
		"chars": len(text),
	})
	return nil
}
