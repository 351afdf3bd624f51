package mapper

import (
	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/model"
)

type FlashcardMapper struct{}

func NewFlashcardMapper() *FlashcardMapper {
	return &FlashcardMapper{}
}

func (m *FlashcardMapper) ToEntity(f *model.Flashcard) *entity.Flashcard {
	if f == nil {
		return nil
	}

	return &entity.Flashcard{
		Id:        f.Id,
		NoteId:    f.NoteId,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FlashcardMapper) ToModel(f *entity.Flashcard) *model.Flashcard {
	if f == nil {
		return nil
	}

	return &model.Flashcard{
		Id:        f.Id,
		NoteId:    f.NoteId,
		Question:  f.Question,
		Answer:    f.Answer,
		CreatedAt: f.CreatedAt,
	}
}

func (m *FlashcardMapper) ToEntities(cards []*model.Flashcard) []*entity.Flashcard {
	entities := make([]*entity.Flashcard, len(cards))
	for i, f := range cards {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FlashcardMapper) ToModels(cards []*entity.Flashcard) []*model.Flashcard {
	models := make([]*model.Flashcard, len(cards))
	for i, f := range cards {
		models[i] = m.ToModel(f)
	}
	return models
}
