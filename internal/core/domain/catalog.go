package domain

import (
	"fmt"
	"time"
)

// RankedListing – объект каталога с посчитанным кешбэком.
// Кешбэк считается на каждый запрос заново и не хранится.
type RankedListing struct {
	Listing
	Cashback int64 `json:"cashback"`
}

// CatalogResult – итог одного запроса каталога: отсортированные
// объекты, их количество и готовая фраза для шапки выдачи.
type CatalogResult struct {
	Results    []RankedListing `json:"results"`
	TotalCount int             `json:"total_count"`
	ResultText string          `json:"result_text"`
}

// CountPhrase строит фразу о количестве найденных объектов с
// правильным русским склонением: 1 объект, 2 объекта, 5 объектов,
// 11 объектов.
func CountPhrase(n int) string {
	return fmt.Sprintf("%s %d %s", foundWord(n), n, objectWord(n))
}

func foundWord(n int) string {
	if objectWord(n) == "объект" {
		return "Найден"
	}
	return "Найдено"
}

func objectWord(n int) string {
	if n < 0 {
		n = -n
	}
	switch {
	case n%100 >= 11 && n%100 <= 14:
		return "объектов"
	case n%10 == 1:
		return "объект"
	case n%10 >= 2 && n%10 <= 4:
		return "объекта"
	default:
		return "объектов"
	}
}

// FeedSpec описывает один источник фида объявлений.
type FeedSpec struct {
	Name string `json:"name"`

	// Для HTTP-фида.
	URL    string `json:"url,omitempty"`
	Cursor string `json:"cursor,omitempty"`

	// Для фида из Google-таблицы.
	SpreadsheetID string `json:"spreadsheet_id,omitempty"`
	ReadRange     string `json:"read_range,omitempty"`
}

// ImportTask – одно объявление из фида на пути в хранилище.
// Ходит через очередь в JSON.
type ImportTask struct {
	BatchID   string    `json:"batch_id"` // uuid прогона импорта
	Feed      string    `json:"feed"`
	FetchedAt time.Time `json:"fetched_at"`
	Listing   Listing   `json:"listing"`
}
