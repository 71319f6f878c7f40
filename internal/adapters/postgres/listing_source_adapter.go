package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// ListingSourceAdapter реализует ListingSourcePort для PostgreSQL:
// отдает весь рабочий набор объявлений одним запросом. Рабочий набор –
// рынок одного города, десятки тысяч строк, это осознанно не
// постраничная выборка.
type ListingSourceAdapter struct {
	pool *pgxpool.Pool
}

// NewListingSourceAdapter создает адаптер источника объявлений.
func NewListingSourceAdapter(pool *pgxpool.Pool) (*ListingSourceAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("listing source: pgxpool.Pool cannot be nil")
	}
	return &ListingSourceAdapter{pool: pool}, nil
}

// FetchAll читает все объявления каталога.
func (a *ListingSourceAdapter) FetchAll(ctx context.Context) ([]domain.Listing, error) {
	const query = `
        SELECT id, rooms, area, floor, building_floors,
               price, price_per_m2,
               project, developer, building,
               completion_year, project_year, completion_quarter,
               display_address, country, region, city, district, street, house_number,
               green_mortgage, accredited, renovation, trade_in, object_class
        FROM listings
        ORDER BY id`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		err := rows.Scan(
			&l.ID, &l.Rooms, &l.Area, &l.Floor, &l.BuildingFloors,
			&l.Price, &l.PricePerM2,
			&l.Project, &l.Developer, &l.Building,
			&l.CompletionYear, &l.ProjectYear, &l.CompletionQuarter,
			&l.DisplayAddress, &l.Address.Country, &l.Address.Region, &l.Address.City,
			&l.Address.District, &l.Address.Street, &l.Address.HouseNumber,
			&l.GreenMortgage, &l.Accredited, &l.Renovation, &l.TradeIn, &l.ObjectClass,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return listings, nil
}
