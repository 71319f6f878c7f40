package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LastImportRepository реализует LastImportRepositoryPort для
// PostgreSQL: время последнего успешного импорта каждого фида.
type LastImportRepository struct {
	pool *pgxpool.Pool
}

// NewLastImportRepository создает репозиторий.
func NewLastImportRepository(pool *pgxpool.Pool) (*LastImportRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("last import repository: pgxpool.Pool cannot be nil")
	}
	return &LastImportRepository{pool: pool}, nil
}

// GetLastImport возвращает время последнего импорта фида.
// Отсутствие записи – не ошибка: возвращается нулевое время.
func (r *LastImportRepository) GetLastImport(ctx context.Context, feedName string) (time.Time, error) {
	const query = `SELECT last_import_at FROM feed_last_imports WHERE feed_name = $1`

	var t time.Time
	err := r.pool.QueryRow(ctx, query, feedName).Scan(&t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("error querying last import for feed '%s': %w", feedName, err)
	}
	return t, nil
}

// SetLastImport записывает время последнего импорта фида (UPSERT).
func (r *LastImportRepository) SetLastImport(ctx context.Context, feedName string, t time.Time) error {
	const query = `
        INSERT INTO feed_last_imports (feed_name, last_import_at)
        VALUES ($1, $2)
        ON CONFLICT (feed_name) DO UPDATE SET last_import_at = EXCLUDED.last_import_at`

	if _, err := r.pool.Exec(ctx, query, feedName, t); err != nil {
		return fmt.Errorf("error setting last import for feed '%s': %w", feedName, err)
	}
	return nil
}

// CREATE TABLE IF NOT EXISTS feed_last_imports (
//     feed_name VARCHAR(255) PRIMARY KEY,
//     last_import_at TIMESTAMPTZ NOT NULL
// );
