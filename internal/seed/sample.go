// Package seed provides the sample generation shown by the studio's
// "sample data" toggle and writes it into history.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	models "campaigner/internal/domain/models/studio"
	studioSvc "campaigner/internal/domain/services/studio"
)

//go:embed sample.json
var sampleJSON []byte

// Sample is the canned brief, package and visual assets
type Sample struct {
	Brief       models.Brief          `json:"brief"`
	PackageData models.ContentPackage `json:"packageData"`
	Images      []models.ImageAsset   `json:"images"`
	ImageMeta   models.ImageMeta      `json:"imageMeta"`
}

// LoadSample decodes the embedded sample
func LoadSample() (Sample, error) {
	var s Sample
	if err := json.Unmarshal(sampleJSON, &s); err != nil {
		return Sample{}, fmt.Errorf("decode sample: %w", err)
	}
	return s, nil
}

// Entry builds a history entry from the sample
func (s Sample) Entry(id string, at time.Time) models.HistoryEntry {
	meta := s.ImageMeta
	return models.HistoryEntry{
		ID:          id,
		Timestamp:   at.UTC(),
		Brief:       s.Brief.Clone(),
		PackageData: s.PackageData.Clone(),
		Images:      models.CloneImages(s.Images),
		ImageMeta:   &meta,
	}
}

// HistorySeeder writes sample entries into a history store
type HistorySeeder struct {
	store  studioSvc.HistoryStore
	logger *slog.Logger
}

// NewHistorySeeder creates a new history seeder
func NewHistorySeeder(store studioSvc.HistoryStore, logger *slog.Logger) *HistorySeeder {
	return &HistorySeeder{
		store:  store,
		logger: logger,
	}
}

// Clear removes every entry
func (s *HistorySeeder) Clear(ctx context.Context) int {
	removed := 0
	for _, e := range s.store.Entries() {
		if s.store.Remove(ctx, e.ID) {
			removed++
		}
	}
	s.logger.Info("history cleared", "removed", removed)
	return removed
}

// SeedSample appends count copies of the sample, oldest first, one minute apart.
// newID supplies entry ids.
func (s *HistorySeeder) SeedSample(ctx context.Context, count int, now time.Time, newID func() string) error {
	sample, err := LoadSample()
	if err != nil {
		return err
	}

	for i := count - 1; i >= 0; i-- {
		entry := sample.Entry(newID(), now.Add(-time.Duration(i)*time.Minute))
		s.store.Append(ctx, entry)
		s.logger.Debug("sample entry seeded", "entry_id", entry.ID)
	}

	s.logger.Info("sample history seeded", "entries", count, "total", s.store.Len())
	return nil
}
