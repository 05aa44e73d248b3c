package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	models "campaigner/internal/domain/models/studio"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = "claude-sonnet-4-5"

// AnthropicTransport answers as the roster agent using the Messages API.
// The agent's system prompt asks for the package JSON; the text reply becomes
// the envelope result.
type AnthropicTransport struct {
	client *anthropic.Client
	model  string
	roster Roster
	logger *slog.Logger
}

// NewAnthropicTransport creates an Anthropic-backed transport
func NewAnthropicTransport(apiKey, model string, roster Roster, logger *slog.Logger) (*AnthropicTransport, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if model == "" {
		model = defaultAnthropicModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &AnthropicTransport{
		client: &client,
		model:  model,
		roster: roster,
		logger: logger,
	}, nil
}

// Invoke sends prompt as a single user turn
func (t *AnthropicTransport) Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error) {
	a, err := lookup(t.roster, agentID)
	if err != nil {
		return nil, err
	}

	maxTokens := int64(a.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if a.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: a.SystemPrompt,
			},
		}
	}

	message, err := t.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	t.logger.Debug("anthropic agent replied",
		"agent", a.Name,
		"model", t.model,
		"stop_reason", message.StopReason,
		"input_tokens", message.Usage.InputTokens,
		"output_tokens", message.Usage.OutputTokens,
	)

	if strings.TrimSpace(text.String()) == "" {
		return models.Failure(fmt.Sprintf("%s returned no text", a.Name)), nil
	}
	return models.TextResult(stripCodeFence(text.String())), nil
}
