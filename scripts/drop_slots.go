//go:build ignore

// drop_slots removes the key-value slot table for the current environment.
// Usage: go run scripts/drop_slots.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// TABLE_PREFIX wins, otherwise derive from ENVIRONMENT like the server does
	prefix := os.Getenv("TABLE_PREFIX")
	if prefix == "" {
		env := os.Getenv("ENVIRONMENT")
		if env == "" {
			env = "dev" // Default to dev
		}
		prefix = env + "_"
	}

	if prefix == "prod_" && os.Getenv("CONFIRM_PROD") != "yes" {
		log.Fatal("refusing to drop prod slots without CONFIRM_PROD=yes")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	if _, err := db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %skv_slots CASCADE`, prefix)); err != nil {
		log.Fatalf("Failed to drop slot table: %v", err)
	}

	fmt.Printf("Slot table dropped (prefix: %s)\n", prefix)
}
