package agent

import (
	"fmt"
	"log/slog"

	"campaigner/internal/config"
	studioSvc "campaigner/internal/domain/services/studio"
)

// NewTransport builds the transport selected by AGENT_PROVIDER.
//
// Supported providers:
//   - "lorem" - offline agent that fabricates envelopes (no credentials required)
//   - "anthropic" - Claude models via the Anthropic API
//   - "openai" - chat completions plus image generation
//   - "envelope" - hosted agent platform speaking the envelope protocol
//
// The result is rate limited when AGENT_RATE_PER_MINUTE > 0 and always
// bounded by AGENT_TIMEOUT.
func NewTransport(cfg *config.Config, roster Roster, logger *slog.Logger) (studioSvc.AgentTransport, error) {
	var (
		transport studioSvc.AgentTransport
		err       error
	)

	switch cfg.AgentProvider {
	case config.ProviderLorem:
		transport = NewLoremTransport(roster, cfg.LoremDelay)

	case config.ProviderAnthropic:
		transport, err = NewAnthropicTransport(cfg.AnthropicAPIKey, cfg.DefaultModel, roster, logger)

	case config.ProviderOpenAI:
		transport, err = NewOpenAITransport(OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			ChatModel:  cfg.DefaultModel,
			ImageModel: cfg.ImageModel,
		}, roster, logger)

	case config.ProviderEnvelope:
		// The HTTP client timeout sits above the per-call deadline
		transport, err = NewEnvelopeClient(cfg.AgentAPIURL, cfg.AgentAPIKey, cfg.AgentTimeout+cfg.AgentTimeout/10, logger)

	default:
		return nil, fmt.Errorf("unsupported agent provider: %s", cfg.AgentProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s transport: %w", cfg.AgentProvider, err)
	}

	if cfg.AgentRatePerMinute > 0 {
		transport = NewRateLimited(transport, cfg.AgentRatePerMinute, 1)
	}
	return NewTimed(transport, cfg.AgentTimeout, logger), nil
}
