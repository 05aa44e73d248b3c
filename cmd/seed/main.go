package main

import (
	"context"
	"flag"
	"log"
	"time"

	"campaigner/internal/config"
	"campaigner/internal/repository"
	"campaigner/internal/seed"
	"campaigner/internal/service/studio/history"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	count := flag.Int("count", 1, "Number of sample generations to add")
	clearFirst := flag.Bool("clear", false, "Remove all history entries before seeding")
	clearOnly := flag.Bool("clear-only", false, "Remove all history entries and exit")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*clearFirst || *clearOnly) {
		log.Fatalf("BLOCKED: cannot clear history in production environment")
	}

	logger, closeLog, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	ctx := context.Background()
	slot, closeSlot, err := repository.OpenSlot(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open history slot: %v", err)
	}
	defer closeSlot()

	store := history.NewStore(slot, cfg.HistoryKey, cfg.HistoryCap, logger)
	store.Load(ctx)
	log.Printf("Seeding history (backend: %s, key: %s, existing entries: %d)", cfg.HistoryBackend, cfg.HistoryKey, store.Len())

	seeder := seed.NewHistorySeeder(store, logger)

	if *clearFirst || *clearOnly {
		removed := seeder.Clear(ctx)
		log.Printf("Removed %d entries", removed)
		if *clearOnly {
			return
		}
	}

	if err := seeder.SeedSample(ctx, *count, time.Now(), uuid.NewString); err != nil {
		log.Fatalf("Failed to seed sample: %v", err)
	}

	log.Printf("Seeding complete: %d entries in history", store.Len())
}
