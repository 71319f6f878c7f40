package cashback

import "testing"

func TestTieredPolicy(t *testing.T) {
	calc := New(DefaultConfig(), nil)

	cases := []struct {
		name  string
		price int64
		want  int64
	}{
		{"first tier", 2_500_000, 125_000},
		{"second tier", 4_000_000, 280_000},
		{"open tier capped", 6_000_000, 500_000},
		{"exactly at boundary goes up a tier", 3_000_000, 210_000},
		{"zero price", 0, 0},
		{"negative price", -100, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := calc.Tiered(c.price); got != c.want {
				t.Errorf("Tiered(%d): got %d, want %d", c.price, got, c.want)
			}
		})
	}
}

func TestTieredNeverExceedsCap(t *testing.T) {
	calc := New(DefaultConfig(), nil)
	for _, price := range []int64{1, 3_000_000, 5_000_000, 10_000_000, 100_000_000} {
		if got := calc.Tiered(price); got > 500_000 {
			t.Errorf("Tiered(%d) = %d exceeds payout cap", price, got)
		}
	}
}

func TestByRatePolicy(t *testing.T) {
	rates := StaticRateTable{
		"42":        3,
		"жк морской": 4,
	}
	calc := New(DefaultConfig(), rates)

	cases := []struct {
		name  string
		price int64
		keys  []string
		want  int64
	}{
		{"rate by id", 2_000_000, []string{"42", "ЖК Морской"}, 60_000},
		{"rate by name when id missing", 2_000_000, []string{"999", "ЖК Морской"}, 80_000},
		{"case insensitive name", 2_000_000, []string{"жк морской"}, 80_000},
		{"default rate when nothing matches", 2_000_000, []string{"999", "неизвестный"}, 100_000},
		{"empty keys fall back to default", 2_000_000, nil, 100_000},
		{"capped", 100_000_000, []string{"42"}, 500_000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := calc.ByRate(c.price, c.keys...); got != c.want {
				t.Errorf("ByRate(%d, %v): got %d, want %d", c.price, c.keys, got, c.want)
			}
		})
	}
}

func TestByRateWithoutTable(t *testing.T) {
	calc := New(DefaultConfig(), nil)
	// Без таблицы – всегда дефолтная ставка.
	if got := calc.ByRate(2_000_000, "42"); got != 100_000 {
		t.Errorf("got %d, want 100000", got)
	}
}

func TestComputeSelectsPolicy(t *testing.T) {
	calc := New(DefaultConfig(), StaticRateTable{"42": 3})

	if got := calc.Compute(PolicyTiered, 2_000_000, "42"); got != 100_000 {
		t.Errorf("tiered: got %d, want 100000", got)
	}
	if got := calc.Compute(PolicyRate, 2_000_000, "42"); got != 60_000 {
		t.Errorf("rate: got %d, want 60000", got)
	}
	// Незнакомая политика деградирует до ступенчатой.
	if got := calc.Compute(Policy("unknown"), 2_000_000); got != 100_000 {
		t.Errorf("unknown policy: got %d, want 100000", got)
	}
}

func TestNewFillsZeroConfig(t *testing.T) {
	calc := New(Config{}, nil)
	if got := calc.Tiered(2_500_000); got != 125_000 {
		t.Errorf("zero config should fall back to default tiers: got %d, want 125000", got)
	}
}

func TestAmountRoundsDown(t *testing.T) {
	calc := New(Config{
		Tiers:       []Tier{{UpTo: 0, Rate: 3}},
		DefaultRate: 3,
		PayoutCap:   1_000_000,
	}, nil)
	// 33333 * 3% = 999.99 -> 999.
	if got := calc.Tiered(33_333); got != 999 {
		t.Errorf("got %d, want 999", got)
	}
}
