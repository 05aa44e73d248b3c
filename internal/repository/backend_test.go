package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"campaigner/internal/config"
	"campaigner/internal/domain/repositories"
)

func TestOpenSlot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory", config.Config{HistoryBackend: config.BackendMemory}, false},
		{"file", config.Config{HistoryBackend: config.BackendFile, HistoryKey: "mcc_history", HistoryFile: filepath.Join(t.TempDir(), "h.json")}, false},
		{"unknown", config.Config{HistoryBackend: "tape"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, closeFn, err := OpenSlot(ctx, &tt.cfg, logger)
			defer closeFn()
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenSlot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if _, err := slot.Read(ctx, "mcc_history"); !errors.Is(err, repositories.ErrSlotEmpty) {
				t.Errorf("fresh slot Read err = %v, want ErrSlotEmpty", err)
			}
			if err := slot.Write(ctx, "mcc_history", []byte("[]")); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := slot.Read(ctx, "mcc_history")
			if err != nil || string(got) != "[]" {
				t.Errorf("Read = %q, %v", got, err)
			}
		})
	}
}
