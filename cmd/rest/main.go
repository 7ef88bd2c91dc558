package main

import (
	"context"
	"log"

	"baristabox-be/internal/bootstrap"
	"baristabox-be/internal/config"
	"baristabox-be/internal/server"
	"baristabox-be/internal/tracer"
	"baristabox-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled)
	defer shutdownTracer(context.Background())

	// 2. Initialize Database (optional: transcripts and embedding cache)
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
		gormDB = db
	}

	// 3. Bootstrap Dependencies (Container)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := bootstrap.NewContainer(ctx, cfg, bootstrap.Options{DB: gormDB})
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}
	defer container.Close()

	// 4. Build the flavor map and classifier indexes before taking traffic
	if _, err := container.IndexService.Rebuild(ctx); err != nil {
		log.Printf("[WARN] Initial index build failed, POST /api/admin/reindex once providers are reachable: %v", err)
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	go container.WebSocketHub.Run(ctx)

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
