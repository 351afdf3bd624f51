package model

import "github.com/google/uuid"

type Tag struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}
