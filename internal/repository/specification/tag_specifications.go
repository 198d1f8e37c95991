package specification

import (
	"strings"

	"gorm.io/gorm"
)

// TagNameEquals matches a tag name case-insensitively.
type TagNameEquals struct {
	Name string
}

func (s TagNameEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(tags.name) = ?", strings.ToLower(s.Name))
}

type TagNameContains struct {
	Search string
}

func (s TagNameContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(s.Search) + "%"
	return db.Where("LOWER(tags.name) LIKE ?", pattern)
}
