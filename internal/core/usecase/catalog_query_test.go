package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/inbackru/v35-sub000/internal/core/cashback"
	"github.com/inbackru/v35-sub000/internal/core/domain"
)

type fakeListingSource struct {
	listings []domain.Listing
	err      error
	calls    int
}

func (f *fakeListingSource) FetchAll(ctx context.Context) ([]domain.Listing, error) {
	f.calls++
	return f.listings, f.err
}

type fakeRateProvider struct {
	rates map[string]float64
	err   error
}

func (f *fakeRateProvider) LoadRates(ctx context.Context) (map[string]float64, error) {
	return f.rates, f.err
}

func ptrF(v float64) *float64 { return &v }

func catalogFixture() []domain.Listing {
	return []domain.Listing{
		{ID: 1, Rooms: 1, Price: 4_000_000, Area: ptrF(35), Project: "ЖК Морской"},
		{ID: 2, Rooms: 2, Price: 6_000_000, Area: ptrF(55), Project: "ЖК Морской"},
		{ID: 3, Rooms: 2, Price: 5_500_000, Area: ptrF(52), Project: "ЖК Горный"},
	}
}

func newTestUseCase(source *fakeListingSource, rates *fakeRateProvider, policy cashback.Policy) *CatalogQueryUseCase {
	if rates == nil {
		return NewCatalogQueryUseCase(source, nil, cashback.DefaultConfig(), policy)
	}
	return NewCatalogQueryUseCase(source, rates, cashback.DefaultConfig(), policy)
}

func TestExecuteFiltersAndCounts(t *testing.T) {
	source := &fakeListingSource{listings: catalogFixture()}
	uc := newTestUseCase(source, nil, cashback.PolicyTiered)

	result := uc.Execute(context.Background(), map[string][]string{
		"rooms": {"2"},
	})

	if result.TotalCount != 2 {
		t.Fatalf("TotalCount: got %d, want 2", result.TotalCount)
	}
	if result.ResultText != "Найдено 2 объекта" {
		t.Errorf("ResultText: got %q", result.ResultText)
	}
}

func TestExecuteResolvesAliases(t *testing.T) {
	source := &fakeListingSource{listings: catalogFixture()}
	uc := newTestUseCase(source, nil, cashback.PolicyTiered)

	// Легаси-имена параметров дают тот же результат, что канонические.
	canonical := uc.Execute(context.Background(), map[string][]string{
		"price_max": {"5.6"},
		"rooms":     {"2"},
	})
	legacy := uc.Execute(context.Background(), map[string][]string{
		"priceTo":   {"5.6"},
		"flat_type": {"2"},
	})

	if canonical.TotalCount != 1 || legacy.TotalCount != canonical.TotalCount {
		t.Errorf("canonical=%d legacy=%d, want both 1", canonical.TotalCount, legacy.TotalCount)
	}
	if legacy.Results[0].ID != 3 {
		t.Errorf("got id %d, want 3", legacy.Results[0].ID)
	}
}

func TestExecuteSourceFailureGivesEmptyResult(t *testing.T) {
	source := &fakeListingSource{err: errors.New("connection refused")}
	uc := newTestUseCase(source, nil, cashback.PolicyTiered)

	result := uc.Execute(context.Background(), nil)

	if result.TotalCount != 0 || len(result.Results) != 0 {
		t.Errorf("got %d results, want empty", len(result.Results))
	}
	if result.Results == nil {
		t.Error("Results must be an empty slice, not nil")
	}
	if result.ResultText != "Найдено 0 объектов" {
		t.Errorf("ResultText: got %q", result.ResultText)
	}
}

func TestExecuteComputesTieredCashback(t *testing.T) {
	source := &fakeListingSource{listings: catalogFixture()}
	uc := newTestUseCase(source, nil, cashback.PolicyTiered)

	result := uc.Execute(context.Background(), map[string][]string{"rooms": {"1"}})
	if result.TotalCount != 1 {
		t.Fatalf("got %d results", result.TotalCount)
	}
	// 4 млн попадает во вторую ступень: 7%.
	if got := result.Results[0].Cashback; got != 280_000 {
		t.Errorf("cashback: got %d, want 280000", got)
	}
}

func TestExecuteRatePolicyUsesProvider(t *testing.T) {
	source := &fakeListingSource{listings: catalogFixture()}
	rates := &fakeRateProvider{rates: map[string]float64{"жк морской": 3}}
	uc := newTestUseCase(source, rates, cashback.PolicyRate)

	result := uc.Execute(context.Background(), map[string][]string{"rooms": {"1"}})
	if result.TotalCount != 1 {
		t.Fatalf("got %d results", result.TotalCount)
	}
	// Ставка ЖК 3% от 4 млн.
	if got := result.Results[0].Cashback; got != 120_000 {
		t.Errorf("cashback: got %d, want 120000", got)
	}
}

func TestExecuteRateProviderFailureFallsBack(t *testing.T) {
	source := &fakeListingSource{listings: catalogFixture()}
	rates := &fakeRateProvider{err: errors.New("table missing")}
	uc := newTestUseCase(source, rates, cashback.PolicyRate)

	result := uc.Execute(context.Background(), map[string][]string{"rooms": {"1"}})
	if result.TotalCount != 1 {
		t.Fatalf("got %d results", result.TotalCount)
	}
	// Дефолтная ставка 5% от 4 млн.
	if got := result.Results[0].Cashback; got != 200_000 {
		t.Errorf("cashback: got %d, want 200000", got)
	}
}

func TestExecuteSortsResults(t *testing.T) {
	source := &fakeListingSource{listings: catalogFixture()}
	uc := newTestUseCase(source, nil, cashback.PolicyTiered)

	asc := uc.Execute(context.Background(), nil)
	if asc.Results[0].ID != 1 || asc.Results[2].ID != 2 {
		t.Errorf("default sort: got order %v", resultIDs(asc))
	}

	desc := uc.Execute(context.Background(), map[string][]string{"sort": {"price_desc"}})
	if desc.Results[0].ID != 2 || desc.Results[2].ID != 1 {
		t.Errorf("price_desc: got order %v", resultIDs(desc))
	}

	unknown := uc.Execute(context.Background(), map[string][]string{"sort": {"wat"}})
	if unknown.Results[0].ID != 1 {
		t.Errorf("unknown sort must fall back to price_asc: got order %v", resultIDs(unknown))
	}
}

func resultIDs(r domain.CatalogResult) []int64 {
	out := make([]int64, 0, len(r.Results))
	for _, item := range r.Results {
		out = append(out, item.ID)
	}
	return out
}

func TestPickManySplitsCommaJoined(t *testing.T) {
	params := map[string][]string{
		"rooms":   {"студия,2"},
		"rooms[]": {"3"},
	}
	got := pickMany(params, "rooms")
	want := []string{"студия", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPickOnePrefersCanonicalName(t *testing.T) {
	params := map[string][]string{
		"price_min": {"3"},
		"minPrice":  {"2"},
	}
	if got := pickOne(params, "price_min"); got != "3" {
		t.Errorf("got %q, want %q", got, "3")
	}
}
