package studio

import (
	"context"

	models "campaigner/internal/domain/models/studio"
)

// WorkflowService is the application-state object behind the presentation boundary
type WorkflowService interface {
	// SubmitBrief runs phase 1: generate the content package for the brief
	SubmitBrief(ctx context.Context, brief models.Brief) (*models.Snapshot, error)

	// RequestGraphics runs phase 2 against the current package; no-op without one
	RequestGraphics(ctx context.Context) (*models.Snapshot, error)

	// LoadHistoryEntry publishes a past generation as current state
	LoadHistoryEntry(ctx context.Context, id string) (*models.Snapshot, error)

	// DeleteHistoryEntry removes a past generation
	DeleteHistoryEntry(ctx context.Context, id string) error

	// QueryHistory filters the history log
	QueryHistory(search, channel string) []models.HistoryEntry

	// UpdateBody replaces the current package's body text
	UpdateBody(body string) (*models.Snapshot, error)

	// DismissBanner clears the status and error messages
	DismissBanner() *models.Snapshot

	// Snapshot returns the current state
	Snapshot() *models.Snapshot
}
