package application

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/internal/domain/entity"
	repo "github.com/ramchaik/gojo/internal/domain/repository"
	"github.com/ramchaik/gojo/pkg/helpers"
	"github.com/ramchaik/gojo/pkg/mailer"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrRoleNotFound  = errors.New("board role not found")
)

// BoardService owns boards and board roles, and derives edit permissions
// from the stored rows. The invite publisher is optional; a nil publisher
// just skips invitation emails.
type BoardService struct {
	Boards  repo.BoardRepository
	Users   repo.UserRepository
	Logger  *logrus.Logger
	Invites *helpers.RabbitPublisher
}

func NewBoardService(boards repo.BoardRepository, users repo.UserRepository, logger *logrus.Logger, invites *helpers.RabbitPublisher) *BoardService {
	return &BoardService{Boards: boards, Users: users, Logger: logger, Invites: invites}
}

// CreateBoard inserts a board together with its Owner role; both rows become
// visible atomically or not at all.
func (s *BoardService) CreateBoard(ctx context.Context, ownerID, name string) (*entity.Board, error) {
	if name == "" {
		name = entity.DefaultBoardName
	}
	b := &entity.Board{Name: name}
	if err := s.Boards.CreateWithOwner(ctx, b, ownerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BoardService) GetBoard(ctx context.Context, id string) (*entity.Board, error) {
	b, err := s.Boards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BoardService) ListBoardsForUser(ctx context.Context, userID string) ([]*entity.Board, error) {
	return s.Boards.ListForUser(ctx, userID)
}

func (s *BoardService) TouchLastOpened(ctx context.Context, boardID string) error {
	err := s.Boards.TouchLastOpened(ctx, boardID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrBoardNotFound
	}
	return err
}

func (s *BoardService) RenameBoard(ctx context.Context, boardID, name string) error {
	err := s.Boards.Rename(ctx, boardID, name)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrBoardNotFound
	}
	return err
}

func (s *BoardService) DeleteBoard(ctx context.Context, boardID string) (*entity.Board, error) {
	b, err := s.Boards.Delete(ctx, boardID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BoardService) GetRole(ctx context.Context, boardID, userID string) (*entity.BoardRole, error) {
	br, err := s.Boards.GetRole(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return br, nil
}

// UpsertEditorRole grants Editor to the pair unless a role row already
// exists; an existing Owner is never downgraded.
func (s *BoardService) UpsertEditorRole(ctx context.Context, boardID, userID string) error {
	return s.Boards.UpsertEditorRole(ctx, boardID, userID)
}

// AddMemberByEmail looks the user up by email and grants Editor. A queued
// invitation email is best-effort and never fails the call.
func (s *BoardService) AddMemberByEmail(ctx context.Context, boardID, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.Boards.AddRole(ctx, boardID, u.ID, entity.RoleEditor); err != nil {
		return err
	}
	s.publishInvite(ctx, boardID, u)
	return nil
}

func (s *BoardService) publishInvite(ctx context.Context, boardID string, u *entity.User) {
	if s.Invites == nil {
		return
	}
	boardName := ""
	if b, err := s.Boards.GetByID(ctx, boardID); err == nil {
		boardName = b.Name
	}
	job := mailer.InviteJob{
		To:        u.Email,
		Name:      u.Name,
		BoardID:   boardID,
		BoardName: boardName,
	}
	if err := s.Invites.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"board_id": boardID,
			"email":    u.Email,
		}).Warn("invite publish failed")
	}
}

func (s *BoardService) ListMembers(ctx context.Context, boardID string) ([]*entity.BoardMember, error) {
	return s.Boards.ListMembers(ctx, boardID)
}

// IsOwner reports whether a role row with role Owner exists for the pair.
func (s *BoardService) IsOwner(ctx context.Context, boardID, userID string) (bool, error) {
	br, err := s.Boards.GetRole(ctx, boardID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return br.Role == entity.RoleOwner, nil
}

// CanEdit reports whether any role row exists for the pair; Owner and Editor
// both map to full access.
func (s *BoardService) CanEdit(ctx context.Context, boardID, userID string) (bool, error) {
	br, err := s.Boards.GetRole(ctx, boardID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entity.PermissionOf(br.Role) == entity.PermissionFullAccess, nil
}

// CheckSecret compares the supplied token against the board's stored secret.
// A missing board is ErrBoardNotFound, distinct from a wrong secret. The
// token gates unauthenticated guests, so the comparison is constant-time.
func (s *BoardService) CheckSecret(ctx context.Context, boardID, secretID string) (bool, error) {
	b, err := s.GetBoard(ctx, boardID)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(b.SecretID), []byte(secretID)) == 1, nil
}
