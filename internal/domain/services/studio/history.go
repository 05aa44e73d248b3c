package studio

import (
	"context"

	models "campaigner/internal/domain/models/studio"
)

// HistoryStore is the ordered, most-recent-first log of past generations.
// Every mutation persists the full log; persistence failures never surface.
type HistoryStore interface {
	// Load reads the persisted log once; unreadable content yields an empty log
	Load(ctx context.Context)

	// Append prepends an entry
	Append(ctx context.Context, entry models.HistoryEntry)

	// PatchHead replaces images/imageMeta on index 0.
	// Returns false when the log is empty or the patch's EntryID no longer heads it.
	PatchHead(ctx context.Context, patch models.HistoryPatch) bool

	// Remove deletes the entry with the given id; false when absent
	Remove(ctx context.Context, id string) bool

	// Query filters by case-insensitive title/topic substring and exact channel
	Query(search, channel string) []models.HistoryEntry

	// Get returns a copy of the entry with the given id
	Get(id string) (models.HistoryEntry, bool)

	// Entries returns a copy of the full log
	Entries() []models.HistoryEntry

	// Len returns the number of entries
	Len() int
}
