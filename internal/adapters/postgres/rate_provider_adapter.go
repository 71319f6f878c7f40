package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RateProviderAdapter реализует RateProviderPort: загружает таблицу
// ставок кешбэка по ЖК. Каждый ЖК попадает в таблицу под двумя
// ключами – id и имя в нижнем регистре.
type RateProviderAdapter struct {
	pool *pgxpool.Pool
}

// NewRateProviderAdapter создает адаптер таблицы ставок.
func NewRateProviderAdapter(pool *pgxpool.Pool) (*RateProviderAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("rate provider: pgxpool.Pool cannot be nil")
	}
	return &RateProviderAdapter{pool: pool}, nil
}

// LoadRates читает ставки всех ЖК.
func (a *RateProviderAdapter) LoadRates(ctx context.Context) (map[string]float64, error) {
	const query = `SELECT project_id, project_name, rate FROM project_cashback_rates`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cashback rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var projectID int64
		var projectName string
		var rate float64
		if err := rows.Scan(&projectID, &projectName, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		rates[strconv.FormatInt(projectID, 10)] = rate
		if name := strings.ToLower(strings.TrimSpace(projectName)); name != "" {
			rates[name] = rate
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}

	return rates, nil
}

// CREATE TABLE IF NOT EXISTS project_cashback_rates (
//     project_id BIGINT PRIMARY KEY,
//     project_name TEXT NOT NULL,
//     rate DOUBLE PRECISION NOT NULL
// );
