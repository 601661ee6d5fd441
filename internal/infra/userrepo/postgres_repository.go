package userrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linjia/ai-closet/internal/domain/auth"
)

// PostgresRepository implements auth.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a user account.
func (r *PostgresRepository) Insert(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	return err
}

// FindByEmail fetches an account by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// FindByID fetches an account by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (auth.User, bool, error) {
	var user auth.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.User{}, false, nil
	}
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
