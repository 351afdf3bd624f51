package unitofwork

import (
	"context"

	"github.com/KhadijaXD/NoteNova/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	TagRepository() contract.TagRepository
	FlashcardRepository() contract.FlashcardRepository
}
