package repository

import (
	"context"

	"github.com/ramchaik/gojo/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Implementations return ErrNotFound for missing rows and ErrEmailTaken when
// the unique email constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateAvatarURL(ctx context.Context, id, avatarURL string) error
}
