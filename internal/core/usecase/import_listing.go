package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/inbackru/v35-sub000/internal/core/addr"
	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/internal/core/port"
)

// ImportListingUseCase обрабатывает одно объявление из очереди
// импорта: разбирает адрес и сохраняет запись в хранилище.
// Адрес разбирается именно здесь, на записи, а не на каждом запросе
// каталога.
type ImportListingUseCase struct {
	storage port.ListingStoragePort
}

// NewImportListingUseCase создает сценарий импорта.
func NewImportListingUseCase(storage port.ListingStoragePort) *ImportListingUseCase {
	return &ImportListingUseCase{storage: storage}
}

// Execute обогащает объявление разобранным адресом и сохраняет его.
// Сохранение того же id – обновление: объявления не удаляются явно,
// они просто перестают приходить в фиде.
func (uc *ImportListingUseCase) Execute(ctx context.Context, task domain.ImportTask) error {
	listing := task.Listing
	listing.Address = addr.Parse(listing.DisplayAddress)

	if err := uc.storage.Save(ctx, listing); err != nil {
		return fmt.Errorf("import listing %d (feed %s, batch %s): %w", listing.ID, task.Feed, task.BatchID, err)
	}

	log.Printf("ImportListing: saved listing %d from feed '%s' (batch %s)\n", listing.ID, task.Feed, task.BatchID)
	return nil
}
