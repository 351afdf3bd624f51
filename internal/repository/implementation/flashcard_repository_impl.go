package implementation

import (
	"context"

	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/mapper"
	"github.com/KhadijaXD/NoteNova/internal/model"
	"github.com/KhadijaXD/NoteNova/internal/repository/contract"
	"github.com/KhadijaXD/NoteNova/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlashcardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FlashcardMapper
}

func NewFlashcardRepository(db *gorm.DB) contract.FlashcardRepository {
	return &FlashcardRepositoryImpl{
		db:     db,
		mapper: mapper.NewFlashcardMapper(),
	}
}

func (r *FlashcardRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FlashcardRepositoryImpl) CreateBatch(ctx context.Context, cards []*entity.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	models := r.mapper.ToModels(cards)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		cards[i].CreatedAt = m.CreatedAt
	}
	return nil
}

func (r *FlashcardRepositoryImpl) DeleteAllByNoteId(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.Flashcard{}).Error
}

func (r *FlashcardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error) {
	var models []*model.Flashcard
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
