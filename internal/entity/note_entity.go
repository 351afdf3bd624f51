package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Content    string
	Summary    string
	SourceFile string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Tags       []*Tag
	Flashcards []*Flashcard
}
