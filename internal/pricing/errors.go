package pricing

import "errors"

var (
	// ErrNegativePrice итоговая цена получилась отрицательной - ошибка конфигурации тарифов
	ErrNegativePrice = errors.New("pricing: resolved price is negative")
)
