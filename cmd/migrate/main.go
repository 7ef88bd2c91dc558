package main

import (
	"log"

	"baristabox-be/internal/config"
	"baristabox-be/internal/model"
	"baristabox-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Migrating transcript and embedding cache tables...")

	models := []interface{}{
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.BeanEmbedding{},
	}

	if err := database.Migrate(db, models...); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
