package usecase

import (
	"context"
	"log"
	"strconv"

	"github.com/inbackru/v35-sub000/internal/core/cashback"
	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/internal/core/filter"
	"github.com/inbackru/v35-sub000/internal/core/port"
	"github.com/inbackru/v35-sub000/internal/core/rank"
)

// CatalogQueryUseCase – оркестратор запроса каталога: нормализация
// параметров, фильтрация, расчет кешбэка, сортировка, фраза о
// количестве. Сценарий без состояния, один запрос – один вызов
// Execute; конкурентные вызовы независимы.
type CatalogQueryUseCase struct {
	source      port.ListingSourcePort
	rateLookup  port.RateProviderPort
	cashbackCfg cashback.Config
	policy      cashback.Policy
}

// NewCatalogQueryUseCase создает сценарий каталога. rateLookup может
// быть nil, если таблица ставок не сконфигурирована – тогда стратегия
// ставок всегда использует дефолтный процент.
func NewCatalogQueryUseCase(
	source port.ListingSourcePort,
	rateLookup port.RateProviderPort,
	cashbackCfg cashback.Config,
	policy cashback.Policy,
) *CatalogQueryUseCase {
	return &CatalogQueryUseCase{
		source:      source,
		rateLookup:  rateLookup,
		cashbackCfg: cashbackCfg,
		policy:      policy,
	}
}

// Execute выполняет запрос каталога. Никогда не возвращает ошибку:
// недоступность источника деградирует в пустую выдачу – страница
// каталога показывает "ничего не найдено", а не падает.
func (uc *CatalogQueryUseCase) Execute(ctx context.Context, rawParams map[string][]string) domain.CatalogResult {
	candidates, err := uc.source.FetchAll(ctx)
	if err != nil {
		log.Printf("CatalogQuery: listing source unavailable: %v. Returning empty result.\n", err)
		return emptyResult()
	}

	spec := buildFilterSpec(rawParams)
	survivors := filter.Apply(candidates, spec)

	calc := cashback.New(uc.cashbackCfg, uc.loadRateTable(ctx))

	results := make([]domain.RankedListing, 0, len(survivors))
	for _, l := range survivors {
		results = append(results, domain.RankedListing{
			Listing:  l,
			Cashback: calc.Compute(uc.policy, l.Price, strconv.FormatInt(l.ID, 10), l.Project),
		})
	}

	rank.Sort(results, rank.ParseKey(pickOne(rawParams, "sort")))

	return domain.CatalogResult{
		Results:    results,
		TotalCount: len(results),
		ResultText: domain.CountPhrase(len(results)),
	}
}

// loadRateTable поднимает таблицу ставок. Любая проблема с таблицей –
// не повод ронять каталог: возвращаем nil и считаем по дефолтной
// ставке.
func (uc *CatalogQueryUseCase) loadRateTable(ctx context.Context) cashback.RateTable {
	if uc.policy != cashback.PolicyRate || uc.rateLookup == nil {
		return nil
	}
	rates, err := uc.rateLookup.LoadRates(ctx)
	if err != nil {
		log.Printf("CatalogQuery: failed to load cashback rates: %v. Falling back to default rate.\n", err)
		return nil
	}
	return cashback.StaticRateTable(rates)
}

func emptyResult() domain.CatalogResult {
	return domain.CatalogResult{
		Results:    []domain.RankedListing{},
		TotalCount: 0,
		ResultText: domain.CountPhrase(0),
	}
}
