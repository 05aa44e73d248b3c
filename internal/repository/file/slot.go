// Package file stores each slot as a JSON file under one directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"campaigner/internal/domain/repositories"
)

// SlotRepository persists slot values as files. Writes go to a temp file in the
// same directory and are renamed into place, so a crash leaves the old value.
type SlotRepository struct {
	path   func(key string) string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ repositories.Slot = (*SlotRepository)(nil)

// NewSlotRepository stores the slot named key at filePath.
// Other keys are stored next to it as <key>.json.
func NewSlotRepository(key, filePath string, logger *slog.Logger) *SlotRepository {
	dir := filepath.Dir(filePath)
	return &SlotRepository{
		path: func(k string) string {
			if k == key {
				return filePath
			}
			return filepath.Join(dir, sanitizeKey(k)+".json")
		},
		logger: logger,
	}
}

// Read returns the file contents, or ErrSlotEmpty if the file does not exist
func (r *SlotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repositories.ErrSlotEmpty
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

// Write atomically replaces the file contents
func (r *SlotRepository) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.path(key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename slot %s: %w", key, err)
	}

	r.logger.Debug("slot written", "key", key, "path", target, "bytes", len(data))
	return nil
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
