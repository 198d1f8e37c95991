package entity

import "github.com/google/uuid"

// Tag names are stored lowercase; uniqueness is case-insensitive.
type Tag struct {
	Id   uuid.UUID
	Name string
}
