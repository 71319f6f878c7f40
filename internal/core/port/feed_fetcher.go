package port

import (
	"context"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// FeedFetcherPort извлекает страницу объявлений из внешнего фида.
// Возвращает курсор следующей страницы; пустой курсор означает конец
// фида.
type FeedFetcherPort interface {
	FetchListings(ctx context.Context, feed domain.FeedSpec) ([]domain.Listing, string, error)
}
