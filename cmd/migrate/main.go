package main

import (
	"log"

	"pollpulse/internal/config"
	"pollpulse/pkg/database"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.ApplyRawMigrations(db, "migrations"); err != nil {
		log.Fatalf("raw migrations failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	log.Println("migrations applied")
}
