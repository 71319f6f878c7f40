// Package cache держит снапшот рабочего набора объявлений с TTL.
// Явная замена модульного кеша со штампом времени из старой версии:
// часы и TTL инжектируются, владеет кешем источник данных, ядро
// каталога о кеше не знает.
package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/internal/core/port"
)

// SnapshotSource оборачивает ListingSourcePort и отдает кешированный
// снапшот, пока тот не протух. Безопасен для конкурентных запросов.
type SnapshotSource struct {
	inner port.ListingSourcePort
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	snapshot  []domain.Listing
	fetchedAt time.Time
}

// NewSnapshotSource создает кеширующий источник. now == nil означает
// time.Now.
func NewSnapshotSource(inner port.ListingSourcePort, ttl time.Duration, now func() time.Time) *SnapshotSource {
	if now == nil {
		now = time.Now
	}
	return &SnapshotSource{inner: inner, ttl: ttl, now: now}
}

// FetchAll отдает снапшот, обновляя его при протухании. Если
// обновление не удалось, а старый снапшот есть – отдаем старый:
// протухшая выдача лучше пустой страницы.
func (s *SnapshotSource) FetchAll(ctx context.Context) ([]domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && s.now().Sub(s.fetchedAt) < s.ttl {
		return s.snapshot, nil
	}

	fresh, err := s.inner.FetchAll(ctx)
	if err != nil {
		if s.snapshot != nil {
			log.Printf("SnapshotSource: refresh failed: %v. Serving stale snapshot from %s.\n", err, s.fetchedAt.Format(time.RFC3339))
			return s.snapshot, nil
		}
		return nil, err
	}

	s.snapshot = fresh
	s.fetchedAt = s.now()
	return s.snapshot, nil
}

// Invalidate сбрасывает снапшот; следующий запрос пойдет в источник.
func (s *SnapshotSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.fetchedAt = time.Time{}
}
