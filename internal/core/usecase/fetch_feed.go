package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/internal/core/port"
)

// FetchFeedUseCase выкачивает фид постранично и ставит каждое
// объявление в очередь импорта. Один вызов Execute – один прогон
// импорта с собственным batch id.
type FetchFeedUseCase struct {
	fetcher    port.FeedFetcherPort
	queue      port.ImportQueuePort
	lastImport port.LastImportRepositoryPort
}

// NewFetchFeedUseCase создает сценарий выгрузки фида.
func NewFetchFeedUseCase(
	fetcher port.FeedFetcherPort,
	queue port.ImportQueuePort,
	lastImport port.LastImportRepositoryPort,
) *FetchFeedUseCase {
	return &FetchFeedUseCase{
		fetcher:    fetcher,
		queue:      queue,
		lastImport: lastImport,
	}
}

// Execute обходит фид от первой страницы до пустого курсора.
// Объявление, которое не удалось поставить в очередь, пропускается –
// остальной фид важнее.
func (uc *FetchFeedUseCase) Execute(ctx context.Context, feed domain.FeedSpec) error {
	batchID := uuid.NewString()
	startedAt := time.Now().UTC()
	log.Printf("FetchFeed: starting import of feed '%s' (batch %s)\n", feed.Name, batchID)

	enqueued := 0
	pages := 0
	current := feed

	for {
		pages++
		listings, nextCursor, err := uc.fetcher.FetchListings(ctx, current)
		if err != nil {
			return fmt.Errorf("fetch feed '%s' page %d: %w", feed.Name, pages, err)
		}

		for _, l := range listings {
			task := domain.ImportTask{
				BatchID:   batchID,
				Feed:      feed.Name,
				FetchedAt: startedAt,
				Listing:   l,
			}
			if err := uc.queue.Enqueue(ctx, task); err != nil {
				log.Printf("FetchFeed: failed to enqueue listing %d from feed '%s': %v. Skipping.\n", l.ID, feed.Name, err)
				continue
			}
			enqueued++
		}

		if nextCursor == "" {
			break
		}
		current.Cursor = nextCursor
	}

	if err := uc.lastImport.SetLastImport(ctx, feed.Name, startedAt); err != nil {
		log.Printf("FetchFeed: failed to record last import time for feed '%s': %v\n", feed.Name, err)
	}

	log.Printf("FetchFeed: finished feed '%s' (batch %s): %d listings enqueued, %d pages\n", feed.Name, batchID, enqueued, pages)
	return nil
}
