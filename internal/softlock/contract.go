// Package softlock реализует мягкие блокировки слотов на окно оплаты.
// Блокировка - это соглашение о вежливости между конкурирующими запросами
// резервирования, а не гарантия консистентности: инвариант "не больше одной
// живой брони на слот" обеспечивается повторной проверкой в serializable
// транзакции. TTL - единственный механизм отказоустойчивости: упавший
// процесс ничего не освобождает, блокировка истекает сама.
package softlock

import (
	"context"
	"time"
)

// Manager управляет блокировками по каноническому ключу слота
type Manager interface {
	// Acquire захватывает блокировку одним атомарным решением:
	// выдать, если ключ свободен, истек или уже принадлежит holder.
	// Повторный захват тем же holder продлевает TTL (идемпотентный retry).
	// Занятый чужим holder ключ - ErrAlreadyLocked.
	Acquire(ctx context.Context, key, holder string, ttl time.Duration) error

	// Release снимает блокировку, только если она принадлежит holder.
	// Отсутствующая или истекшая блокировка - ErrNotHeld.
	Release(ctx context.Context, key, holder string) error

	// Holder возвращает владельца активной блокировки.
	// Отсутствующая или истекшая блокировка - ErrNotHeld.
	Holder(ctx context.Context, key string) (string, error)
}
