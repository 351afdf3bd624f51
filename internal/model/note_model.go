package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title      string    `gorm:"type:varchar(255);not null"`
	Content    string    `gorm:"type:text"`
	Summary    string    `gorm:"type:text"`
	SourceFile string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Tags       []*Tag       `gorm:"many2many:note_tags;constraint:OnDelete:CASCADE"`
	Flashcards []*Flashcard `gorm:"foreignKey:NoteId;constraint:OnDelete:CASCADE"`
}

func (Note) TableName() string {
	return "notes"
}
