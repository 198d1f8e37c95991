package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteOwnedByUser struct {
	UserID uuid.UUID
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

// NotDeleted excludes soft-deleted notes. Every read path applies it; soft
// deletion keeps the row but hides it from the API.
type NotDeleted struct{}

func (s NotDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.is_deleted = ?", false)
}

// NoteSearchQuery matches the query as a case-insensitive substring of the
// title or content.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(s.Query) + "%"
	return db.Where("(LOWER(notes.title) LIKE ? OR LOWER(notes.content) LIKE ?)", pattern, pattern)
}

// HasTag restricts to notes linked to a tag with exactly this name.
type HasTag struct {
	Name string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN note_tags ON note_tags.note_id = notes.id").
		Joins("JOIN tags ON tags.id = note_tags.tag_id").
		Where("tags.name = ?", s.Name)
}
