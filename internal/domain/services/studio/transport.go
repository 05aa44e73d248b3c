package studio

import (
	"context"

	models "campaigner/internal/domain/models/studio"
)

// AgentTransport invokes a remote agent by opaque id.
// A returned error is a raised failure; Envelope.Success=false is a reported one.
type AgentTransport interface {
	Invoke(ctx context.Context, prompt, agentID string) (*models.Envelope, error)
}
