package specification

import (
	"strings"

	"gorm.io/gorm"
)

type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = ?", strings.ToLower(s.Name))
}
