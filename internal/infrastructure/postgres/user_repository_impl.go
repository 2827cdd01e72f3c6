package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramchaik/gojo/internal/domain/entity"
	"github.com/ramchaik/gojo/internal/domain/repository"
)

// Postgres unique_violation error code.
const uniqueViolationCode = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts the user row and its password row in one transaction.
// A user created with empty password material gets no passwords row and
// can never log in.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, name, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, u.Email, u.Name, u.AvatarURL)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrEmailTaken
		}
		return err
	}

	if u.HasPassword() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO passwords (user_id, hash, salt)
			VALUES ($1, $2, $3)
		`, u.ID, u.PasswordHash, u.PasswordSalt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, `u.id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `u.email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var hash, salt *string

	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.name, u.avatar_url, u.created_at, p.hash, p.salt
		FROM users u
		LEFT JOIN passwords p ON p.user_id = u.id
		WHERE `+where, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &u.CreatedAt, &hash, &salt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	if salt != nil {
		u.PasswordSalt = *salt
	}
	return u, nil
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, id, avatarURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET avatar_url = $1 WHERE id = $2
	`, avatarURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
