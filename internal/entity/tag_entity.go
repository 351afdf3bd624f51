package entity

import "github.com/google/uuid"

type Tag struct {
	Id   uuid.UUID
	Name string
}

// TagUsage is a tag name with the number of a user's notes carrying it.
type TagUsage struct {
	Name  string
	Count int
}
