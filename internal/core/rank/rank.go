// Package rank – детерминированная сортировка выдачи каталога.
package rank

import (
	"sort"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// SortKey – ключ и направление сортировки.
type SortKey string

const (
	PriceAsc     SortKey = "price_asc"
	PriceDesc    SortKey = "price_desc"
	AreaAsc      SortKey = "area_asc"
	AreaDesc     SortKey = "area_desc"
	CashbackDesc SortKey = "cashback_desc"
)

// DefaultKey применяется, когда сортировка не задана или не распознана.
const DefaultKey = PriceAsc

// ParseKey разбирает ключ сортировки из параметра запроса.
// Незнакомое значение дает ключ по умолчанию.
func ParseKey(raw string) SortKey {
	switch SortKey(raw) {
	case PriceAsc, PriceDesc, AreaAsc, AreaDesc, CashbackDesc:
		return SortKey(raw)
	}
	return DefaultKey
}

// Sort сортирует выдачу на месте. Сортировка стабильная: объекты с
// равным ключом сохраняют исходный порядок. Отсутствующее значение
// ключа считается нулем и никогда не роняет сортировку.
func Sort(items []domain.RankedListing, key SortKey) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := keyValue(items[i], key), keyValue(items[j], key)
		if descending(key) {
			return a > b
		}
		return a < b
	})
}

func keyValue(item domain.RankedListing, key SortKey) float64 {
	switch key {
	case AreaAsc, AreaDesc:
		if item.Area == nil {
			return 0
		}
		return *item.Area
	case CashbackDesc:
		return float64(item.Cashback)
	default:
		return float64(item.Price)
	}
}

func descending(key SortKey) bool {
	return key == PriceDesc || key == AreaDesc || key == CashbackDesc
}
