package usecase

import (
	"strings"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// Таблица алиасов параметров запроса: канонический ключ – список
// принимаемых имен, включая исторические. Разрешается один раз в
// начале запроса, чтобы набор легаси-имен был виден и тестируем
// целиком, а не размазан по обработчику.
var paramAliases = map[string][]string{
	"price_min":      {"price_min", "priceFrom", "price_from", "minPrice"},
	"price_max":      {"price_max", "priceTo", "price_to", "maxPrice"},
	"rooms":          {"rooms", "room", "rooms[]", "flat_type"},
	"area_min":       {"area_min", "areaFrom", "square_min"},
	"area_max":       {"area_max", "areaTo", "square_max"},
	"floor_min":      {"floor_min", "floorFrom"},
	"floor_max":      {"floor_max", "floorTo"},
	"district":       {"district", "rayon"},
	"developer":      {"developer", "builder"},
	"project":        {"project", "complex", "residential_complex", "zhk"},
	"building":       {"building", "liter", "block"},
	"search":         {"search", "q", "query", "text"},
	"building_class": {"building_class", "house_type", "building_class[]"},
	"year":           {"year", "years[]", "delivery_year", "srok"},
	"green_mortgage": {"green_mortgage", "greenMortgage"},
	"accredited":     {"accredited", "accreditation"},
	"renovation":     {"renovation", "remont"},
	"trade_in":       {"trade_in", "tradein"},
	"object_class":   {"object_class", "objectClass"},
	"sort":           {"sort", "sort_by", "order"},
}

// pickOne возвращает первое непустое скалярное значение по алиасам
// канонического ключа.
func pickOne(params map[string][]string, canonical string) string {
	for _, name := range paramAliases[canonical] {
		for _, v := range params[name] {
			if strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// pickMany собирает все непустые значения по алиасам канонического
// ключа, включая значения, склеенные запятой в одном параметре.
func pickMany(params map[string][]string, canonical string) []string {
	var out []string
	for _, name := range paramAliases[canonical] {
		for _, v := range params[name] {
			for _, piece := range strings.Split(v, ",") {
				if piece = strings.TrimSpace(piece); piece != "" {
					out = append(out, piece)
				}
			}
		}
	}
	return out
}

// buildFilterSpec нормализует сырой мешок параметров запроса в
// каноническую спеку фильтров.
func buildFilterSpec(params map[string][]string) domain.FilterSpec {
	return domain.FilterSpec{
		PriceMin:        pickOne(params, "price_min"),
		PriceMax:        pickOne(params, "price_max"),
		Rooms:           pickMany(params, "rooms"),
		AreaMin:         pickOne(params, "area_min"),
		AreaMax:         pickOne(params, "area_max"),
		FloorMin:        pickOne(params, "floor_min"),
		FloorMax:        pickOne(params, "floor_max"),
		District:        pickOne(params, "district"),
		Developer:       pickOne(params, "developer"),
		Project:         pickOne(params, "project"),
		Building:        pickOne(params, "building"),
		Search:          pickOne(params, "search"),
		BuildingClasses: pickMany(params, "building_class"),
		Years:           pickMany(params, "year"),
		GreenMortgage:   pickOne(params, "green_mortgage"),
		Accredited:      pickOne(params, "accredited"),
		Renovation:      pickOne(params, "renovation"),
		TradeIn:         pickOne(params, "trade_in"),
		ObjectClass:     pickOne(params, "object_class"),
	}
}
