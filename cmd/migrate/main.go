package main

import (
	"restaurant_booking/internal/config" // Custom import path (Config)
	"restaurant_booking/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	database, err := db.Open(cfg.DSN()) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	// Grant admin to the configured usernames
	if _, err := db.PromoteAdmins(database, cfg.AdminUsernames); err != nil {
		logrus.Fatalf("admin promotion failed: %v", err)
	}
}
