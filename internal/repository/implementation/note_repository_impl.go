package implementation

import (
	"context"
	"errors"

	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/mapper"
	"github.com/KhadijaXD/NoteNova/internal/model"
	"github.com/KhadijaXD/NoteNova/internal/repository/contract"
	"github.com/KhadijaXD/NoteNova/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db        *gorm.DB
	mapper    *mapper.NoteMapper
	tagMapper *mapper.TagMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	tagMapper := mapper.NewTagMapper()
	return &NoteRepositoryImpl{
		db:        db,
		mapper:    mapper.NewNoteMapper(tagMapper, mapper.NewFlashcardMapper()),
		tagMapper: tagMapper,
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	note.CreatedAt = m.CreatedAt
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	note.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Tags", "Flashcards").Delete(&model.Note{Id: id}).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoteRepositoryImpl) ReplaceTags(ctx context.Context, noteId uuid.UUID, tags []*entity.Tag) error {
	m := &model.Note{Id: noteId}
	return r.db.WithContext(ctx).Model(m).Association("Tags").Replace(r.tagMapper.ToModels(tags))
}
