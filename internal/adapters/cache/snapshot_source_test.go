package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

type fakeSource struct {
	listings []domain.Listing
	err      error
	calls    int
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]domain.Listing, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.listings, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSnapshotServedWithinTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	inner := &fakeSource{listings: []domain.Listing{{ID: 1}}}
	source := NewSnapshotSource(inner, 5*time.Minute, clock.Now)

	for i := 0; i < 3; i++ {
		got, err := source.FetchAll(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d listings, want 1", len(got))
		}
		clock.Advance(time.Minute)
	}

	if inner.calls != 1 {
		t.Errorf("inner source called %d times, want 1", inner.calls)
	}
}

func TestSnapshotRefreshesAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	inner := &fakeSource{listings: []domain.Listing{{ID: 1}}}
	source := NewSnapshotSource(inner, 5*time.Minute, clock.Now)

	if _, err := source.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	clock.Advance(5 * time.Minute)
	inner.listings = []domain.Listing{{ID: 1}, {ID: 2}}

	got, err := source.FetchAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d listings after refresh, want 2", len(got))
	}
	if inner.calls != 2 {
		t.Errorf("inner source called %d times, want 2", inner.calls)
	}
}

func TestStaleSnapshotServedOnRefreshFailure(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	inner := &fakeSource{listings: []domain.Listing{{ID: 1}}}
	source := NewSnapshotSource(inner, 5*time.Minute, clock.Now)

	if _, err := source.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	clock.Advance(10 * time.Minute)
	inner.err = errors.New("db down")

	got, err := source.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("stale snapshot must be served, got error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("got %v, want the stale snapshot", got)
	}
}

func TestFirstFetchFailurePropagates(t *testing.T) {
	inner := &fakeSource{err: errors.New("db down")}
	source := NewSnapshotSource(inner, 5*time.Minute, nil)

	if _, err := source.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error when there is no snapshot to fall back to")
	}
}

func TestInvalidateForcesRefresh(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	inner := &fakeSource{listings: []domain.Listing{{ID: 1}}}
	source := NewSnapshotSource(inner, time.Hour, clock.Now)

	if _, err := source.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	source.Invalidate()
	if _, err := source.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if inner.calls != 2 {
		t.Errorf("inner source called %d times, want 2", inner.calls)
	}
}
