package repository

import (
	"context"
	"errors"

	"github.com/ramchaik/gojo/internal/domain/entity"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already taken")
)

// BoardRepository defines board and board-role persistence.
type BoardRepository interface {
	// CreateWithOwner inserts the board row and its Owner role row as one
	// transaction; a board must never become visible without an owner.
	CreateWithOwner(ctx context.Context, b *entity.Board, ownerID string) error
	GetByID(ctx context.Context, id string) (*entity.Board, error)
	ListForUser(ctx context.Context, userID string) ([]*entity.Board, error)
	TouchLastOpened(ctx context.Context, id string) error
	Rename(ctx context.Context, id, name string) error
	// Delete removes the board and returns the deleted row. Role rows go
	// with it via ON DELETE CASCADE.
	Delete(ctx context.Context, id string) (*entity.Board, error)

	GetRole(ctx context.Context, boardID, userID string) (*entity.BoardRole, error)
	// UpsertEditorRole inserts an Editor role unless a role row already
	// exists for the pair, in which case it is left untouched.
	UpsertEditorRole(ctx context.Context, boardID, userID string) error
	AddRole(ctx context.Context, boardID, userID string, role entity.Role) error
	ListMembers(ctx context.Context, boardID string) ([]*entity.BoardMember, error)
}
