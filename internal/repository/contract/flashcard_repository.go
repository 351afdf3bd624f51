package contract

import (
	"context"

	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/repository/specification"

	"github.com/google/uuid"
)

type FlashcardRepository interface {
	CreateBatch(ctx context.Context, cards []*entity.Flashcard) error
	DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error)
}
