package dto

import "github.com/google/uuid"

// NoteChangedMessage is published whenever a note's content changes or
// the note is deleted, so cached AI output for the old content can go.
type NoteChangedMessage struct {
	NoteId      uuid.UUID `json:"note_id"`
	ContentHash string    `json:"content_hash"`
}
