package main

import (
	"context"
	"log"

	"github.com/KhadijaXD/NoteNova/internal/bootstrap"
	"github.com/KhadijaXD/NoteNova/internal/config"
	"github.com/KhadijaXD/NoteNova/internal/server"
	"github.com/KhadijaXD/NoteNova/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate database: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
