package model

import "github.com/google/uuid"

type Tag struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// NoteTag is the composite-key join table between notes and tags.
// Rows are cascade-deleted with either parent.
type NoteTag struct {
	NoteId uuid.UUID `gorm:"type:uuid;primaryKey;constraint:OnDelete:CASCADE"`
	TagId  uuid.UUID `gorm:"type:uuid;primaryKey;constraint:OnDelete:CASCADE"`
}

func (NoteTag) TableName() string {
	return "note_tags"
}
