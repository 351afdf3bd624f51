package dto

import (
	"time"

	"github.com/google/uuid"
)

// FlashcardInput accepts both the flat question/answer shape and the
// exported Anki-style shape where the text sits under fields.Front/Back.
type FlashcardInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Fields   *struct {
		Front string `json:"Front"`
		Back  string `json:"Back"`
	} `json:"fields,omitempty"`
}

// Normalize resolves the two accepted shapes into a question/answer pair.
func (f FlashcardInput) Normalize() (question, answer string) {
	question, answer = f.Question, f.Answer
	if f.Fields != nil {
		if question == "" {
			question = f.Fields.Front
		}
		if answer == "" {
			answer = f.Fields.Back
		}
	}
	return question, answer
}

type CreateNoteRequest struct {
	Title      string           `json:"title" validate:"required"`
	Content    string           `json:"content" validate:"required"`
	Summary    string           `json:"summary"`
	Tags       []string         `json:"tags"`
	Flashcards []FlashcardInput `json:"flashcards"`
}

type UpdateNoteRequest struct {
	Id         uuid.UUID        `json:"-"`
	Title      string           `json:"title" validate:"required"`
	Content    string           `json:"content" validate:"required"`
	Summary    string           `json:"summary"`
	Tags       []string         `json:"tags"`
	Flashcards []FlashcardInput `json:"flashcards"`
}

type FlashcardResponse struct {
	Id       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

type NoteResponse struct {
	Id         uuid.UUID           `json:"id"`
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	Summary    string              `json:"summary,omitempty"`
	SourceFile string              `json:"source_file,omitempty"`
	Tags       []string            `json:"tags"`
	Flashcards []FlashcardResponse `json:"flashcards"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// FlashcardStudyResponse is the single-card view the study interface
// pages through.
type FlashcardStudyResponse struct {
	Card         FlashcardResponse `json:"card"`
	Total        int               `json:"total"`
	CurrentIndex int               `json:"current_index"`
}

type SearchNotesRequest struct {
	Query string
	Tags  []string
}

// TagResponse reports how many of the caller's notes carry the tag.
type TagResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type GenerateFlashcardsRequest struct {
	Force bool `json:"force"`
}
