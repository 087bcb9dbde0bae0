// Package llm wraps the language-model completion call behind a one-method
// interface so the classifier can be tested without the network.
package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	commonerrors "github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/errors"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/logger"
	"github.com/srsaviorangell/agente-bot-whats-ia-gemini/internal/common/metrics"
)

// Client completes a single prompt into text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient implements Client on top of the Google Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  logger.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, log logger.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
		logger: log.WithFields(map[string]interface{}{
			"component": "gemini",
			"model":     model,
		}),
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("gemini", "error").Inc()
		return "", commonerrors.NewUpstreamUnavailableError("gemini", err)
	}
	metrics.UpstreamRequests.WithLabelValues("gemini", "ok").Inc()

	text := resp.Text()
	if text == "" {
		return "", commonerrors.NewUpstreamUnavailableError("gemini",
			fmt.Errorf("empty completion for model %s", c.model))
	}

	c.logger.Debug("completion received", map[string]interface{}{
		"chars": len(text),
	})

	return text, nil
}

// Verify sends a trivial probe completion, used as a startup connectivity check.
func (c *GeminiClient) Verify(ctx context.Context) error {
	_, err := c.Complete(ctx, "Olá. Responda apenas 'OK'.")
	return err
}
