package domain

import (
	"strings"
	"testing"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func TestDisplayTitle(t *testing.T) {
	cases := []struct {
		name    string
		listing Listing
		want    string
	}{
		{
			"studio stays studio regardless of area",
			Listing{Rooms: 0, Area: ptrF(42), Floor: ptrI(3), BuildingFloors: ptrI(9)},
			"Студия 42 м², 3/9 эт.",
		},
		{
			"two rooms",
			Listing{Rooms: 2, Area: ptrF(54.5), Floor: ptrI(10), BuildingFloors: ptrI(16)},
			"2-комн. 54.5 м², 10/16 эт.",
		},
		{
			"no area",
			Listing{Rooms: 1, Floor: ptrI(2), BuildingFloors: ptrI(5)},
			"1-комн., 2/5 эт.",
		},
		{
			"floor without building floors",
			Listing{Rooms: 3, Area: ptrF(80), Floor: ptrI(7)},
			"3-комн. 80 м², 7 эт.",
		},
		{
			"bare listing",
			Listing{Rooms: 0},
			"Студия",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.listing.DisplayTitle(); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestPricePerArea(t *testing.T) {
	stored := int64(200_000)
	cases := []struct {
		name    string
		listing Listing
		want    int64
	}{
		{"stored value wins", Listing{Price: 5_000_000, Area: ptrF(50), PricePerM2: &stored}, 200_000},
		{"derived", Listing{Price: 5_000_000, Area: ptrF(50)}, 100_000},
		{"derived rounds down", Listing{Price: 5_000_000, Area: ptrF(54)}, 92_592},
		{"no area", Listing{Price: 5_000_000}, 0},
		{"zero price", Listing{Area: ptrF(50)}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.listing.PricePerArea(); got != c.want {
				t.Errorf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestBuildingClassOf(t *testing.T) {
	cases := []struct {
		floors int
		want   BuildingClass
	}{
		{1, BuildingClassLow},
		{5, BuildingClassLow},
		{6, BuildingClassMid},
		{12, BuildingClassMid},
		{13, BuildingClassHigh},
		{30, BuildingClassHigh},
	}
	for _, c := range cases {
		l := Listing{BuildingFloors: ptrI(c.floors)}
		got, ok := l.BuildingClassOf()
		if !ok || got != c.want {
			t.Errorf("floors=%d: got %q (%v), want %q", c.floors, got, ok, c.want)
		}
	}

	if _, ok := (Listing{}).BuildingClassOf(); ok {
		t.Error("listing without building floors must have no class")
	}
}

func TestResolvedYear(t *testing.T) {
	l := Listing{CompletionYear: ptrI(2026), ProjectYear: ptrI(2025)}
	if year, ok := l.ResolvedYear(); !ok || year != 2026 {
		t.Errorf("completion year must win: got %d (%v)", year, ok)
	}

	l = Listing{ProjectYear: ptrI(2025)}
	if year, ok := l.ResolvedYear(); !ok || year != 2025 {
		t.Errorf("project year fallback: got %d (%v)", year, ok)
	}

	if _, ok := (Listing{}).ResolvedYear(); ok {
		t.Error("no years set: ok must be false")
	}
}

func TestSearchBlob(t *testing.T) {
	district := "Кудепста м-н"
	l := Listing{
		Rooms:     2,
		Developer: "СтройИнвест",
		Project:   "ЖК Морской",
		Address:   AddressComponents{District: &district},
	}
	blob := l.SearchBlob()
	for _, want := range []string{"двухкомнатная", "2-комнатная", "стройинвест", "кудепста", "жк морской", "квартира"} {
		if !strings.Contains(blob, want) {
			t.Errorf("blob %q must contain %q", blob, want)
		}
	}
	if blob != strings.ToLower(blob) {
		t.Error("blob must be lowercase")
	}
}

func TestCountPhrase(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "Найдено 0 объектов"},
		{1, "Найден 1 объект"},
		{2, "Найдено 2 объекта"},
		{4, "Найдено 4 объекта"},
		{5, "Найдено 5 объектов"},
		{11, "Найдено 11 объектов"},
		{12, "Найдено 12 объектов"},
		{14, "Найдено 14 объектов"},
		{21, "Найден 21 объект"},
		{22, "Найдено 22 объекта"},
		{111, "Найдено 111 объектов"},
		{121, "Найден 121 объект"},
	}
	for _, c := range cases {
		if got := CountPhrase(c.n); got != c.want {
			t.Errorf("CountPhrase(%d): got %q, want %q", c.n, got, c.want)
		}
	}
}
