package wardroberepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// PostgresRepository implements wardrobe.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores the item; a nil embedding is stored as NULL.
func (r *PostgresRepository) Insert(ctx context.Context, item wardrobe.Item, embedding []float32) error {
	var vector any
	if len(embedding) > 0 {
		vector = pgvector.NewVector(embedding)
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wardrobe_items (id, category, color, season, description, photo_key, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, string(item.Category), item.Color, item.Season, item.Description, item.PhotoKey, vector, item.CreatedAt)
	return err
}

// List returns items newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, color, season, description, photo_key, created_at
		FROM wardrobe_items
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []wardrobe.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Get fetches a single item by id.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (wardrobe.Item, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, category, color, season, description, photo_key, created_at
		FROM wardrobe_items
		WHERE id = $1
	`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, false, nil
	}
	if err != nil {
		return wardrobe.Item{}, false, err
	}
	return item, true, nil
}

// Delete removes the item and reports whether a row existed.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wardrobe_items WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// FindNearest returns the closest pgvector match among embedded items.
func (r *PostgresRepository) FindNearest(ctx context.Context, embedding []float32) (wardrobe.SimilarityMatch, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category, color, season, description, photo_key, created_at, embedding <-> $1 AS distance
		FROM wardrobe_items
		WHERE embedding IS NOT NULL
		ORDER BY embedding <-> $1
		LIMIT 1
	`, pgvector.NewVector(embedding))
	if err != nil {
		return wardrobe.SimilarityMatch{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return wardrobe.SimilarityMatch{}, false, rows.Err()
	}
	var (
		item     wardrobe.Item
		category string
		distance float64
	)
	if err := rows.Scan(&item.ID, &category, &item.Color, &item.Season, &item.Description, &item.PhotoKey, &item.CreatedAt, &distance); err != nil {
		return wardrobe.SimilarityMatch{}, false, err
	}
	item.Category = wardrobe.ParseCategory(category)
	return wardrobe.SimilarityMatch{Item: item, Distance: distance}, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item     wardrobe.Item
		category string
	)
	if err := row.Scan(&item.ID, &category, &item.Color, &item.Season, &item.Description, &item.PhotoKey, &item.CreatedAt); err != nil {
		return wardrobe.Item{}, err
	}
	item.Category = wardrobe.ParseCategory(category)
	return item, nil
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
