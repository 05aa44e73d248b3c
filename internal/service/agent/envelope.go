package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	models "campaigner/internal/domain/models/studio"
)

const (
	// DefaultEnvelopeTimeout is the default HTTP timeout for hosted agent calls
	DefaultEnvelopeTimeout = 120 * time.Second

	maxEnvelopeBytes = 8 << 20
)

// EnvelopeClient calls a hosted agent platform that already speaks the
// {success, error, response, module_outputs} envelope.
type EnvelopeClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewEnvelopeClient creates a client for the hosted agent API
func NewEnvelopeClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*EnvelopeClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("agent API URL is required")
	}
	if timeout <= 0 {
		timeout = DefaultEnvelopeTimeout
	}
	return &EnvelopeClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

type envelopeRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

// Invoke posts the prompt. Non-2xx responses are reported failures;
// network and decode errors are raised.
func (c *EnvelopeClient) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	payload, err := json.Marshal(envelopeRequest{Message: prompt, AgentID: agentID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEnvelopeBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("agent API error", "status", resp.StatusCode, "agent_id", agentID)
		msg := strings.TrimSpace(string(body))
		var env models.Envelope
		if json.Unmarshal(body, &env) == nil && env.Error != "" {
			msg = env.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("agent API error (status %d)", resp.StatusCode)
		}
		return models.Failure(msg), nil
	}

	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &env, nil
}
