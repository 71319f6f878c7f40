package domain

import (
	"fmt"
	"strings"
)

// Класс дома по этажности. Вычисляется из количества этажей в доме,
// в базе не хранится.
type BuildingClass string

const (
	BuildingClassLow  BuildingClass = "малоэтажный"  // до 5 этажей
	BuildingClassMid  BuildingClass = "среднеэтажный" // 6-12 этажей
	BuildingClassHigh BuildingClass = "многоэтажный"  // от 13 этажей
)

// AddressComponents – разобранный адрес объекта. Любая часть может
// отсутствовать, если в исходной строке было мало сегментов.
type AddressComponents struct {
	Country     *string `json:"country,omitempty"`
	Region      *string `json:"region,omitempty"`
	City        *string `json:"city,omitempty"`
	District    *string `json:"district,omitempty"`
	Street      *string `json:"street,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`
}

// Listing – одна квартира в каталоге, атомарная единица поиска.
// Заполняется импортом из фида; ядро каталога читает её как есть
// и никогда не мутирует.
type Listing struct {
	ID    int64 `json:"id"`
	Rooms int   `json:"rooms"` // 0 = студия

	Area           *float64 `json:"area,omitempty"` // м²
	Floor          *int     `json:"floor,omitempty"`
	BuildingFloors *int     `json:"building_floors,omitempty"`

	Price      int64  `json:"price"` // рубли, без копеек
	PricePerM2 *int64 `json:"price_per_m2,omitempty"`

	Project   string `json:"project,omitempty"` // жилой комплекс
	Developer string `json:"developer,omitempty"`
	Building  string `json:"building,omitempty"` // литер/корпус

	CompletionYear    *int `json:"completion_year,omitempty"` // срок сдачи корпуса
	ProjectYear       *int `json:"project_year,omitempty"`    // срок сдачи ЖК
	CompletionQuarter *int `json:"completion_quarter,omitempty"`

	DisplayAddress string            `json:"display_address,omitempty"`
	Address        AddressComponents `json:"address"`

	GreenMortgage *bool  `json:"green_mortgage,omitempty"`
	Accredited    *bool  `json:"accredited,omitempty"`
	Renovation    *bool  `json:"renovation,omitempty"`
	TradeIn       *bool  `json:"trade_in,omitempty"`
	ObjectClass   string `json:"object_class,omitempty"` // комфорт, бизнес и т.д.
}

// DisplayTitle собирает заголовок карточки: тип квартиры, площадь,
// этаж/этажность. Студия остается студией при любой площади.
func (l Listing) DisplayTitle() string {
	var b strings.Builder
	if l.Rooms == 0 {
		b.WriteString("Студия")
	} else {
		fmt.Fprintf(&b, "%d-комн.", l.Rooms)
	}
	if l.Area != nil {
		fmt.Fprintf(&b, " %s м²", trimFloat(*l.Area))
	}
	if l.Floor != nil && l.BuildingFloors != nil {
		fmt.Fprintf(&b, ", %d/%d эт.", *l.Floor, *l.BuildingFloors)
	} else if l.Floor != nil {
		fmt.Fprintf(&b, ", %d эт.", *l.Floor)
	}
	return b.String()
}

// PricePerArea возвращает цену за м²: либо сохраненную в фиде, либо
// производную price/area, округленную вниз. 0, если посчитать нечем.
func (l Listing) PricePerArea() int64 {
	if l.PricePerM2 != nil {
		return *l.PricePerM2
	}
	if l.Area == nil || *l.Area <= 0 || l.Price <= 0 {
		return 0
	}
	return int64(float64(l.Price) / *l.Area)
}

// BuildingClassOf возвращает класс дома по этажности и false,
// если этажность дома неизвестна.
func (l Listing) BuildingClassOf() (BuildingClass, bool) {
	if l.BuildingFloors == nil {
		return "", false
	}
	switch f := *l.BuildingFloors; {
	case f <= 5:
		return BuildingClassLow, true
	case f <= 12:
		return BuildingClassMid, true
	default:
		return BuildingClassHigh, true
	}
}

// ResolvedYear возвращает срок сдачи: год корпуса приоритетнее
// года ЖК.
func (l Listing) ResolvedYear() (int, bool) {
	if l.CompletionYear != nil {
		return *l.CompletionYear, true
	}
	if l.ProjectYear != nil {
		return *l.ProjectYear, true
	}
	return 0, false
}

// SearchBlob собирает строку, по которой работает полнотекстовый
// фильтр каталога: тип квартиры прописью, застройщик, район, ЖК и
// слово "квартира". Все в нижнем регистре.
func (l Listing) SearchBlob() string {
	parts := []string{roomTypeText(l.Rooms), l.Developer}
	if l.Address.District != nil {
		parts = append(parts, *l.Address.District)
	}
	parts = append(parts, l.Project, "квартира")
	return strings.ToLower(strings.Join(parts, " "))
}

// roomTypeText возвращает текстовое описание типа квартиры,
// для 1-3 комнат – с числительным прописью.
func roomTypeText(rooms int) string {
	switch rooms {
	case 0:
		return "студия"
	case 1:
		return "однокомнатная 1-комнатная"
	case 2:
		return "двухкомнатная 2-комнатная"
	case 3:
		return "трехкомнатная 3-комнатная"
	default:
		return fmt.Sprintf("%d-комнатная", rooms)
	}
}

// trimFloat печатает площадь без хвостовых нулей: 54 вместо 54.00,
// но 54.5 остается 54.5.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
