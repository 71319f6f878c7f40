package port

import (
	"context"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// ImportQueuePort ставит задачу импорта объявления в очередь.
type ImportQueuePort interface {
	Enqueue(ctx context.Context, task domain.ImportTask) error
}
