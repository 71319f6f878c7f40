package port

import "context"

// RateProviderPort загружает таблицу ставок кешбэка по ЖК.
// Ключ – id или имя ЖК в нижнем регистре, значение – процент.
// Отсутствие таблицы или ставки не ошибка: калькулятор уходит на
// дефолтную ставку.
type RateProviderPort interface {
	LoadRates(ctx context.Context) (map[string]float64, error)
}
