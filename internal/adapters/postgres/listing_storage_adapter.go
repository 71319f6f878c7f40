package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// ListingStorageAdapter реализует ListingStoragePort для PostgreSQL.
type ListingStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewListingStorageAdapter создает адаптер хранилища объявлений.
func NewListingStorageAdapter(pool *pgxpool.Pool) (*ListingStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("listing storage: pgxpool.Pool cannot be nil")
	}
	return &ListingStorageAdapter{pool: pool}, nil
}

// Save вставляет или обновляет объявление. UPSERT по id: повторный
// импорт того же объявления обновляет запись, а не плодит дубли.
func (a *ListingStorageAdapter) Save(ctx context.Context, l domain.Listing) error {
	columns := []string{
		"id", "rooms", "area", "floor", "building_floors",
		"price", "price_per_m2",
		"project", "developer", "building",
		"completion_year", "project_year", "completion_quarter",
		"display_address", "country", "region", "city", "district", "street", "house_number",
		"green_mortgage", "accredited", "renovation", "trade_in", "object_class",
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	// На конфликте обновляем все, кроме ключа.
	updates := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}

	sql := fmt.Sprintf(
		`INSERT INTO listings (%s) VALUES (%s)
         ON CONFLICT (id) DO UPDATE SET %s, updated_at = NOW()`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	values := []interface{}{
		l.ID, l.Rooms, l.Area, l.Floor, l.BuildingFloors,
		l.Price, l.PricePerM2,
		l.Project, l.Developer, l.Building,
		l.CompletionYear, l.ProjectYear, l.CompletionQuarter,
		l.DisplayAddress, l.Address.Country, l.Address.Region, l.Address.City,
		l.Address.District, l.Address.Street, l.Address.HouseNumber,
		l.GreenMortgage, l.Accredited, l.Renovation, l.TradeIn, l.ObjectClass,
	}

	if _, err := a.pool.Exec(ctx, sql, values...); err != nil {
		return fmt.Errorf("failed to upsert listing %d: %w", l.ID, err)
	}
	return nil
}

// CREATE TABLE IF NOT EXISTS listings (
//     id BIGINT PRIMARY KEY,
//     rooms INT NOT NULL DEFAULT 0,
//     area DOUBLE PRECISION,
//     floor INT,
//     building_floors INT,
//     price BIGINT NOT NULL DEFAULT 0,
//     price_per_m2 BIGINT,
//     project TEXT NOT NULL DEFAULT '',
//     developer TEXT NOT NULL DEFAULT '',
//     building TEXT NOT NULL DEFAULT '',
//     completion_year INT,
//     project_year INT,
//     completion_quarter INT,
//     display_address TEXT NOT NULL DEFAULT '',
//     country TEXT, region TEXT, city TEXT, district TEXT, street TEXT, house_number TEXT,
//     green_mortgage BOOLEAN, accredited BOOLEAN, renovation BOOLEAN, trade_in BOOLEAN,
//     object_class TEXT NOT NULL DEFAULT '',
//     updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
// );
