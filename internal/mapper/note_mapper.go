package mapper

import (
	"github.com/KhadijaXD/NoteNova/internal/entity"
	"github.com/KhadijaXD/NoteNova/internal/model"
)

type NoteMapper struct {
	tagMapper       *TagMapper
	flashcardMapper *FlashcardMapper
}

func NewNoteMapper(tagMapper *TagMapper, flashcardMapper *FlashcardMapper) *NoteMapper {
	return &NoteMapper{
		tagMapper:       tagMapper,
		flashcardMapper: flashcardMapper,
	}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	return &entity.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Content:    n.Content,
		Summary:    n.Summary,
		SourceFile: n.SourceFile,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
		Tags:       m.tagMapper.ToEntities(n.Tags),
		Flashcards: m.flashcardMapper.ToEntities(n.Flashcards),
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	return &model.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Content:    n.Content,
		Summary:    n.Summary,
		SourceFile: n.SourceFile,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
