package wishlistrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linjia/ai-closet/internal/domain/wishlist"
)

// PostgresRepository implements wishlist.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a wishlist item.
func (r *PostgresRepository) Insert(ctx context.Context, item wishlist.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (id, name, price, photo_key, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.Name, item.Price, item.PhotoKey, item.Link, item.CreatedAt)
	return err
}

// List returns items newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]wishlist.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, photo_key, link, created_at
		FROM wishlist_items
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []wishlist.Item
	for rows.Next() {
		var item wishlist.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.PhotoKey, &item.Link, &item.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Delete removes the item and reports whether a row existed.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ wishlist.Repository = (*PostgresRepository)(nil)
