package schedulerepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linjia/ai-closet/internal/domain/schedule"
)

// PostgresRepository implements schedule.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores an event.
func (r *PostgresRepository) Insert(ctx context.Context, event schedule.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO schedule_events (id, title, event_time, icon, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.Title, event.Time, event.Icon, event.CreatedAt)
	return err
}

// List returns all events; the service sorts them.
func (r *PostgresRepository) List(ctx context.Context) ([]schedule.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, event_time, icon, created_at
		FROM schedule_events
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schedule.Event
	for rows.Next() {
		var event schedule.Event
		if err := rows.Scan(&event.ID, &event.Title, &event.Time, &event.Icon, &event.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

// Delete removes the event and reports whether a row existed.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schedule_events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ schedule.Repository = (*PostgresRepository)(nil)
