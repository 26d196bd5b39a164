package main

import (
	"reservation_system/internal/config" // Custom import path (Config)
	"reservation_system/internal/db"     // Custom import path (Database)
	"reservation_system/internal/logger" // Custom import path (Logging)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	log := logger.New(cfg).App

	gdb, err := db.Open(cfg.DSN()) // Connect using the configured DSN
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Info("Migration completed")
}
