package specification

import (
	"strings"

	"gorm.io/gorm"
)

// MatchesKeyword does a case-insensitive substring match over a note's
// title, content, summary and attached tag names. LOWER(...) LIKE keeps
// the behavior identical on sqlite and postgres.
type MatchesKeyword struct {
	Keyword string
}

func (s MatchesKeyword) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(s.Keyword) + "%"
	return db.Where(
		`LOWER(notes.title) LIKE ? OR LOWER(notes.content) LIKE ? OR LOWER(notes.summary) LIKE ?
			OR EXISTS (
				SELECT 1 FROM note_tags nt
				JOIN tags t ON t.id = nt.tag_id
				WHERE nt.note_id = notes.id AND LOWER(t.name) LIKE ?
			)`,
		pattern, pattern, pattern, pattern,
	)
}

// HasAllTags requires every named tag to be attached to the note.
// Each tag gets its own EXISTS clause so the filter has AND semantics.
type HasAllTags struct {
	Tags []string
}

func (s HasAllTags) Apply(db *gorm.DB) *gorm.DB {
	for _, tag := range s.Tags {
		db = db.Where(
			`EXISTS (
				SELECT 1 FROM note_tags nt
				JOIN tags t ON t.id = nt.tag_id
				WHERE nt.note_id = notes.id AND LOWER(t.name) = ?
			)`,
			strings.ToLower(tag),
		)
	}
	return db
}
