// Package addr разбирает свободную адресную строку объявления на
// структурные части. Разбор эвристический: позиция сегмента плюс
// маркерные слова района. Парсер никогда не ошибается с ошибкой –
// кривой адрес просто дает частично пустые компоненты.
package addr

import (
	"strings"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// Маркеры, по которым сегмент распознается как район/микрорайон,
// а не улица.
var districtMarkers = []string{
	"м-н",
	"микрорайон",
	"жк",
	"жилой комплекс",
}

// Parse разбирает адрес вида
// "Россия, Краснодарский край, Сочи, Кудепста м-н, Искры, 88 лит7".
// Первые три сегмента позиционные (страна, регион, город), хвост
// классифицируется по количеству сегментов. Компоненты за пределами
// имеющихся сегментов остаются nil – ничего не выдумываем.
func Parse(displayAddress string) domain.AddressComponents {
	var out domain.AddressComponents

	raw := strings.TrimSpace(displayAddress)
	if raw == "" {
		return out
	}

	segments := splitSegments(raw)

	if len(segments) > 0 {
		out.Country = &segments[0]
	}
	if len(segments) > 1 {
		out.Region = &segments[1]
	}
	if len(segments) > 2 {
		out.City = &segments[2]
	}
	if len(segments) <= 3 {
		return out
	}

	rest := segments[3:]
	switch len(rest) {
	case 1:
		if hasDistrictMarker(rest[0]) {
			out.District = &rest[0]
		} else {
			out.Street = &rest[0]
		}
	case 2:
		if hasDistrictMarker(rest[0]) {
			out.District = &rest[0]
			out.Street = &rest[1]
		} else {
			out.Street = &rest[0]
			out.HouseNumber = &rest[1]
		}
	case 3:
		out.District = &rest[0]
		out.Street = &rest[1]
		out.HouseNumber = &rest[2]
	default:
		// Лишние сегменты не обрезаем, а склеиваем в номер дома.
		out.District = &rest[0]
		out.Street = &rest[1]
		tail := strings.Join(rest[2:], ", ")
		out.HouseNumber = &tail
	}

	return out
}

// Пустые сегменты (двойная или висящая запятая) выбрасываются:
// компонент либо есть, либо его нет, пустых строк не бывает.
func splitSegments(raw string) []string {
	parts := strings.Split(raw, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

func hasDistrictMarker(segment string) bool {
	lower := strings.ToLower(segment)
	for _, marker := range districtMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
