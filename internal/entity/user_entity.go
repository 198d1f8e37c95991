package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	// StoredAccessToken / StoredRefreshToken hold the most recently issued pair.
	// Refresh validation compares against StoredRefreshToken; both are replaced
	// together on every login and rotation.
	StoredAccessToken  *string
	StoredRefreshToken *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
