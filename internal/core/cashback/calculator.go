// Package cashback считает кешбэк покупателю по цене объекта.
//
// В проекте исторически живут две политики расчета: ступенчатая по
// цене и ставка по ЖК из таблицы ставок. Какая из них каноническая –
// вопрос к продукту, поэтому обе доступны как именованные стратегии,
// а выбор делает вызывающая сторона.
package cashback

import (
	"math"
	"strings"
)

// Policy – имя стратегии расчета.
type Policy string

const (
	// PolicyTiered – процент зависит от ценовой ступени.
	PolicyTiered Policy = "tiered"
	// PolicyRate – процент берется из таблицы ставок по ЖК,
	// при отсутствии ставки – дефолтный процент.
	PolicyRate Policy = "rate"
)

// Tier – одна ценовая ступень. UpTo == 0 означает открытую верхнюю
// границу, Rate – процент.
type Tier struct {
	UpTo int64   `yaml:"up_to"`
	Rate float64 `yaml:"rate"`
}

// Config – настройки калькулятора. Значения по умолчанию совпадают с
// боевыми: 5% до 3 млн, 7% до 5 млн, 10% дальше, потолок 500 тыс.
type Config struct {
	Tiers       []Tier  `yaml:"tiers"`
	DefaultRate float64 `yaml:"default_rate"`
	PayoutCap   int64   `yaml:"payout_cap"`
}

// DefaultConfig возвращает боевые настройки.
func DefaultConfig() Config {
	return Config{
		Tiers: []Tier{
			{UpTo: 3_000_000, Rate: 5},
			{UpTo: 5_000_000, Rate: 7},
			{UpTo: 0, Rate: 10},
		},
		DefaultRate: 5,
		PayoutCap:   500_000,
	}
}

// RateTable отдает ставку в процентах по ключу (id или имя ЖК).
type RateTable interface {
	Rate(key string) (float64, bool)
}

// StaticRateTable – таблица ставок в памяти. Ключи сравниваются без
// учета регистра.
type StaticRateTable map[string]float64

func (t StaticRateTable) Rate(key string) (float64, bool) {
	r, ok := t[strings.ToLower(strings.TrimSpace(key))]
	return r, ok
}

// Calculator считает кешбэк. Безопасен для конкурентного
// использования: состояния нет, таблица ставок только читается.
type Calculator struct {
	cfg   Config
	rates RateTable
}

// New создает калькулятор. rates может быть nil – тогда стратегия
// PolicyRate всегда падает на дефолтную ставку.
func New(cfg Config, rates RateTable) *Calculator {
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = DefaultConfig().Tiers
	}
	if cfg.DefaultRate <= 0 {
		cfg.DefaultRate = DefaultConfig().DefaultRate
	}
	if cfg.PayoutCap <= 0 {
		cfg.PayoutCap = DefaultConfig().PayoutCap
	}
	return &Calculator{cfg: cfg, rates: rates}
}

// Compute считает кешбэк выбранной стратегией. lookupKeys – ключи
// таблицы ставок в порядке приоритета (id ЖК, потом имя); для
// ступенчатой стратегии они игнорируются. Нулевая или отсутствующая
// цена дает 0 без ошибки.
func (c *Calculator) Compute(policy Policy, price int64, lookupKeys ...string) int64 {
	switch policy {
	case PolicyRate:
		return c.ByRate(price, lookupKeys...)
	default:
		return c.Tiered(price)
	}
}

// Tiered – ступенчатая политика: процент по ценовой ступени.
func (c *Calculator) Tiered(price int64) int64 {
	if price <= 0 {
		return 0
	}
	rate := c.cfg.Tiers[len(c.cfg.Tiers)-1].Rate
	for _, t := range c.cfg.Tiers {
		if t.UpTo > 0 && price < t.UpTo {
			rate = t.Rate
			break
		}
	}
	return c.clamp(amount(price, rate))
}

// ByRate – политика по таблице ставок: первая разрешившаяся ставка по
// переданным ключам, иначе дефолтный процент.
func (c *Calculator) ByRate(price int64, lookupKeys ...string) int64 {
	if price <= 0 {
		return 0
	}
	rate := c.cfg.DefaultRate
	if c.rates != nil {
		for _, key := range lookupKeys {
			if key == "" {
				continue
			}
			if r, ok := c.rates.Rate(key); ok {
				rate = r
				break
			}
		}
	}
	return c.clamp(amount(price, rate))
}

func (c *Calculator) clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > c.cfg.PayoutCap {
		return c.cfg.PayoutCap
	}
	return v
}

// amount переводит процент в долю и округляет вниз.
func amount(price int64, rate float64) int64 {
	return int64(math.Floor(float64(price) * rate / 100))
}
