package main

import (
	"log"

	"github.com/KhadijaXD/NoteNova/internal/config"
	"github.com/KhadijaXD/NoteNova/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal("Error: Failed to connect to database: ", err)
	}

	color.Cyan("Starting GORM migration (%s)...", cfg.Database.Driver)

	if err := database.Migrate(db); err != nil {
		color.Red("Migration failed: %v", err)
		log.Fatal(err)
	}

	color.Green("Migration complete: users, tags, notes, note_tags, flashcards")
}
