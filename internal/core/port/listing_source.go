package port

import (
	"context"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// ListingSourcePort отдает рабочий набор объявлений каталога –
// весь рынок одного города, конечную материализуемую выборку.
// Ядру все равно, что за этим стоит: запрос к базе, кеш или срез
// в памяти.
type ListingSourcePort interface {
	FetchAll(ctx context.Context) ([]domain.Listing, error)
}
