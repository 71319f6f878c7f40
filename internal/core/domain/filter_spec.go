package domain

// FilterSpec – нормализованный набор фильтров одного запроса каталога.
// Значения хранятся сырыми строками, как они пришли из query string:
// разбор чисел и спецтокенов – зона ответственности предикатов,
// которые молча игнорируют то, что не смогли разобрать.
// Спека живет один запрос и никогда не сохраняется.
type FilterSpec struct {
	PriceMin string
	PriceMax string

	// Токены комнатности: "студия", "0", "1".."3", "4+" и т.п.
	Rooms []string

	AreaMin  string
	AreaMax  string
	FloorMin string
	FloorMax string

	District  string
	Developer string
	Project   string
	Building  string

	// Свободный поиск: все слова должны встретиться в SearchBlob.
	Search string

	// Классы домов по этажности (малоэтажный и т.д.).
	BuildingClasses []string

	// Годы сдачи; токен "Сдан" матчит всё.
	Years []string

	GreenMortgage string
	Accredited    string
	Renovation    string
	TradeIn       string
	ObjectClass   string
}
