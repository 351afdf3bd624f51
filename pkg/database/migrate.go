package database

import (
	"github.com/KhadijaXD/NoteNova/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Note{},
		&model.Flashcard{},
	)
}
