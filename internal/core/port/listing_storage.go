package port

import (
	"context"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// ListingStoragePort сохраняет объявление в постоянное хранилище.
// Повторное сохранение того же id – обновление, а не дубль.
type ListingStoragePort interface {
	Save(ctx context.Context, listing domain.Listing) error
}
