package contract

import (
	"context"

	"notetaking-be/internal/entity"
	"notetaking-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateTokens replaces the stored access/refresh pair in a single UPDATE,
	// so a rotation never leaves a half-written session.
	UpdateTokens(ctx context.Context, userId uuid.UUID, accessToken, refreshToken string) error
}
