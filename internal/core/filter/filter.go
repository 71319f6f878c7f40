// Package filter применяет набор предикатов каталога к объявлению.
// Объявление проходит, только если проходит каждый активный предикат;
// пустой фильтр не ограничивает ничего. Нечитаемые значения фильтров
// молча деградируют до "без ограничения" – страница каталога не должна
// падать из-за мусора в query string.
package filter

import (
	"strconv"
	"strings"

	"github.com/inbackru/v35-sub000/internal/core/domain"
)

// Порог инференции единиц: введенное число меньше 1000 трактуется как
// миллионы рублей. Пользователь, набравший "5", имеет в виду 5 млн.
const millionThreshold = 1000

// Токен "Сдан" в фильтре срока сдачи матчит все объекты. Это грубое
// приближение из исходной логики: фактическую дату сдачи с текущей
// датой здесь никто не сравнивает.
const deliveredToken = "сдан"

// Apply возвращает объявления, прошедшие все активные предикаты.
func Apply(listings []domain.Listing, spec domain.FilterSpec) []domain.Listing {
	var out []domain.Listing
	for _, l := range listings {
		if Matches(l, spec) {
			out = append(out, l)
		}
	}
	return out
}

// Matches проверяет одно объявление против всех предикатов спеки.
func Matches(l domain.Listing, spec domain.FilterSpec) bool {
	return matchPrice(l, spec.PriceMin, spec.PriceMax) &&
		matchRooms(l, spec.Rooms) &&
		matchFloatRange(l.Area, spec.AreaMin, spec.AreaMax) &&
		matchIntRange(l.Floor, spec.FloorMin, spec.FloorMax) &&
		matchContains(districtOf(l), spec.District) &&
		matchContains(l.Developer, spec.Developer) &&
		matchContains(l.Project, spec.Project) &&
		matchContains(l.Building, spec.Building) &&
		matchSearch(l, spec.Search) &&
		matchBuildingClass(l, spec.BuildingClasses) &&
		matchYears(l, spec.Years) &&
		matchFlag(l.GreenMortgage, spec.GreenMortgage) &&
		matchFlag(l.Accredited, spec.Accredited) &&
		matchFlag(l.Renovation, spec.Renovation) &&
		matchFlag(l.TradeIn, spec.TradeIn) &&
		matchContains(l.ObjectClass, spec.ObjectClass)
}

// matchPrice – ценовой диапазон с инференцией единиц: значение ниже
// порога умножается на миллион. Нечисловая граница отбрасывается.
func matchPrice(l domain.Listing, minRaw, maxRaw string) bool {
	if min, ok := parseMoney(minRaw); ok && l.Price < min {
		return false
	}
	if max, ok := parseMoney(maxRaw); ok && l.Price > max {
		return false
	}
	return true
}

// parseMoney разбирает границу цены. Принимает и "5", и "5000000",
// и "5.5" (тоже миллионы).
func parseMoney(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	if v < millionThreshold {
		v *= 1_000_000
	}
	return int64(v), true
}

// matchRooms – комнатность. Токены: "студия"/"0" – студия, "4+" или
// любое число от 4 – открытый верхний диапазон, число – точное
// совпадение. Список токенов объединяется по ИЛИ.
func matchRooms(l domain.Listing, tokens []string) bool {
	active := false
	for _, raw := range tokens {
		tok := strings.ToLower(strings.TrimSpace(raw))
		if tok == "" {
			continue
		}
		active = true
		switch {
		case tok == "студия" || tok == "0":
			if l.Rooms == 0 {
				return true
			}
		case strings.HasSuffix(tok, "+"):
			if n, err := strconv.Atoi(strings.TrimSuffix(tok, "+")); err == nil && l.Rooms >= n {
				return true
			}
		default:
			n, err := strconv.Atoi(tok)
			if err != nil {
				// Нечитаемый токен не ограничивает выборку.
				return true
			}
			if n >= 4 && l.Rooms >= 4 {
				return true
			}
			if l.Rooms == n {
				return true
			}
		}
	}
	return !active
}

func matchFloatRange(value *float64, minRaw, maxRaw string) bool {
	v := 0.0
	if value != nil {
		v = *value
	}
	if min, ok := parseFloat(minRaw); ok && v < min {
		return false
	}
	if max, ok := parseFloat(maxRaw); ok && v > max {
		return false
	}
	return true
}

func matchIntRange(value *int, minRaw, maxRaw string) bool {
	v := 0
	if value != nil {
		v = *value
	}
	if min, ok := parseFloat(minRaw); ok && float64(v) < min {
		return false
	}
	if max, ok := parseFloat(maxRaw); ok && float64(v) > max {
		return false
	}
	return true
}

func parseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// matchContains – регистронезависимое вхождение подстроки.
func matchContains(value, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func districtOf(l domain.Listing) string {
	if l.Address.District == nil {
		return ""
	}
	return *l.Address.District
}

// matchSearch – свободный поиск: каждое слово запроса должно
// встретиться в поисковой строке объявления. И-по-словам,
// ИЛИ-по-полям, без ранжирования.
func matchSearch(l domain.Listing, query string) bool {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return true
	}
	blob := l.SearchBlob()
	for _, w := range words {
		if !strings.Contains(blob, w) {
			return false
		}
	}
	return true
}

// matchBuildingClass – класс дома по этажности, ИЛИ по запрошенным
// классам. Объект без этажности не попадает ни в один класс.
func matchBuildingClass(l domain.Listing, classes []string) bool {
	active := false
	for _, raw := range classes {
		want := strings.ToLower(strings.TrimSpace(raw))
		if want == "" {
			continue
		}
		active = true
		class, ok := l.BuildingClassOf()
		if ok && string(class) == want {
			return true
		}
	}
	return !active
}

// matchYears – срок сдачи. Год корпуса важнее года ЖК, токен "Сдан"
// матчит всё. Нечитаемый токен не ограничивает выборку.
func matchYears(l domain.Listing, tokens []string) bool {
	active := false
	for _, raw := range tokens {
		tok := strings.ToLower(strings.TrimSpace(raw))
		if tok == "" {
			continue
		}
		if tok == deliveredToken {
			return true
		}
		want, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		active = true
		if year, ok := l.ResolvedYear(); ok && year == want {
			return true
		}
	}
	return !active
}

// matchFlag – булев признак. Фильтр активен только на истинное
// значение; объект без данных признака не проходит, но и не роняет
// запрос.
func matchFlag(value *bool, raw string) bool {
	if !truthy(raw) {
		return true
	}
	return value != nil && *value
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "да", "yes":
		return true
	}
	return false
}
