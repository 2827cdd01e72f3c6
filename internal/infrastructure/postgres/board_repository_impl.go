package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramchaik/gojo/internal/domain/entity"
	"github.com/ramchaik/gojo/internal/domain/repository"
)

type BoardRepository struct {
	pool *pgxpool.Pool
}

func NewBoardRepository(pool *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{pool: pool}
}

func (r *BoardRepository) CreateWithOwner(ctx context.Context, b *entity.Board, ownerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO boards (name)
		VALUES ($1)
		RETURNING id, name, secret_id, last_opened_at, created_at
	`, b.Name)
	if err := scanBoard(row, b); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO board_roles (board_id, user_id, role)
		VALUES ($1, $2, $3)
	`, b.ID, ownerID, entity.RoleOwner); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *BoardRepository) GetByID(ctx context.Context, id string) (*entity.Board, error) {
	b := &entity.Board{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, secret_id, last_opened_at, created_at
		FROM boards
		WHERE id = $1
	`, id)
	if err := scanBoard(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BoardRepository) ListForUser(ctx context.Context, userID string) ([]*entity.Board, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.name, b.secret_id, b.last_opened_at, b.created_at
		FROM board_roles br
		JOIN boards b ON b.id = br.board_id
		WHERE br.user_id = $1
		ORDER BY br.added_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []*entity.Board{}
	for rows.Next() {
		b := &entity.Board{}
		if err := scanBoard(rows, b); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (r *BoardRepository) TouchLastOpened(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE boards SET last_opened_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BoardRepository) Rename(ctx context.Context, id, name string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE boards SET name = $1 WHERE id = $2
	`, name, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BoardRepository) Delete(ctx context.Context, id string) (*entity.Board, error) {
	b := &entity.Board{}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM boards
		WHERE id = $1
		RETURNING id, name, secret_id, last_opened_at, created_at
	`, id)
	if err := scanBoard(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BoardRepository) GetRole(ctx context.Context, boardID, userID string) (*entity.BoardRole, error) {
	br := &entity.BoardRole{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, board_id, user_id, role, added_at
		FROM board_roles
		WHERE board_id = $1 AND user_id = $2
	`, boardID, userID)
	if err := row.Scan(&br.ID, &br.BoardID, &br.UserID, &br.Role, &br.AddedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return br, nil
}

// UpsertEditorRole relies on the (board_id, user_id) unique constraint so two
// concurrent joins for the same pair race safely; an existing row, Owner
// included, is never changed.
func (r *BoardRepository) UpsertEditorRole(ctx context.Context, boardID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO board_roles (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO NOTHING
	`, boardID, userID, entity.RoleEditor)
	return err
}

func (r *BoardRepository) AddRole(ctx context.Context, boardID, userID string, role entity.Role) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO board_roles (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO NOTHING
	`, boardID, userID, role)
	return err
}

func (r *BoardRepository) ListMembers(ctx context.Context, boardID string) ([]*entity.BoardMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.email, u.name, br.role, br.id, br.added_at
		FROM board_roles br
		JOIN users u ON u.id = br.user_id
		WHERE br.board_id = $1
		ORDER BY br.added_at ASC
	`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*entity.BoardMember{}
	for rows.Next() {
		m := &entity.BoardMember{}
		if err := rows.Scan(&m.Email, &m.Name, &m.Role, &m.BoardRoleID, &m.AddedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func scanBoard(row pgx.Row, b *entity.Board) error {
	return row.Scan(&b.ID, &b.Name, &b.SecretID, &b.LastOpenedAt, &b.CreatedAt)
}

var _ repository.BoardRepository = (*BoardRepository)(nil)
