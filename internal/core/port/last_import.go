package port

import (
	"context"
	"time"
)

// LastImportRepositoryPort хранит время последнего успешного импорта
// для каждого фида.
type LastImportRepositoryPort interface {
	GetLastImport(ctx context.Context, feedName string) (time.Time, error)
	SetLastImport(ctx context.Context, feedName string, t time.Time) error
}
