package rank

import (
	"testing"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

func ptrF(v float64) *float64 { return &v }

func ranked() []domain.RankedListing {
	return []domain.RankedListing{
		{Listing: domain.Listing{ID: 1, Price: 7_000_000, Area: ptrF(54)}, Cashback: 300_000},
		{Listing: domain.Listing{ID: 2, Price: 4_000_000, Area: ptrF(28)}, Cashback: 200_000},
		{Listing: domain.Listing{ID: 3, Price: 4_000_000}, Cashback: 500_000},
		{Listing: domain.Listing{ID: 4, Price: 9_000_000, Area: ptrF(120)}, Cashback: 100_000},
	}
}

func orderOf(items []domain.RankedListing) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func assertOrder(t *testing.T, items []domain.RankedListing, want ...int64) {
	t.Helper()
	got := orderOf(items)
	if len(got) != len(want) {
		t.Fatalf("got order %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got order %v, want %v", got, want)
		}
	}
}

func TestSortByPrice(t *testing.T) {
	items := ranked()
	Sort(items, PriceAsc)
	// Объекты 2 и 3 равны по цене и сохраняют исходный порядок.
	assertOrder(t, items, 2, 3, 1, 4)

	items = ranked()
	Sort(items, PriceDesc)
	assertOrder(t, items, 4, 1, 2, 3)
}

func TestSortByAreaMissingAsZero(t *testing.T) {
	items := ranked()
	Sort(items, AreaAsc)
	// Объект 3 без площади сортируется как 0 и уходит в начало.
	assertOrder(t, items, 3, 2, 1, 4)

	items = ranked()
	Sort(items, AreaDesc)
	assertOrder(t, items, 4, 1, 2, 3)
}

func TestSortByCashback(t *testing.T) {
	items := ranked()
	Sort(items, CashbackDesc)
	assertOrder(t, items, 3, 1, 2, 4)
}

func TestSortStability(t *testing.T) {
	// Все ключи равны – порядок не меняется.
	items := []domain.RankedListing{
		{Listing: domain.Listing{ID: 10, Price: 5_000_000}},
		{Listing: domain.Listing{ID: 11, Price: 5_000_000}},
		{Listing: domain.Listing{ID: 12, Price: 5_000_000}},
	}
	Sort(items, PriceAsc)
	assertOrder(t, items, 10, 11, 12)
}

func TestParseKey(t *testing.T) {
	cases := []struct {
		raw  string
		want SortKey
	}{
		{"price_asc", PriceAsc},
		{"price_desc", PriceDesc},
		{"area_asc", AreaAsc},
		{"area_desc", AreaDesc},
		{"cashback_desc", CashbackDesc},
		{"", DefaultKey},
		{"garbage", DefaultKey},
	}
	for _, c := range cases {
		if got := ParseKey(c.raw); got != c.want {
			t.Errorf("ParseKey(%q): got %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestSortEmptyAndNil(t *testing.T) {
	Sort(nil, PriceAsc)
	Sort([]domain.RankedListing{}, CashbackDesc)
}
