package softlock

import (
	"context"
	"sync"
	"time"
)

// entry запись блокировки с ленивым истечением
type entry struct {
	holder    string
	expiresAt time.Time
}

// MemoryManager хранит блокировки в памяти процесса. Подходит для
// single-instance развертывания и тестов; для нескольких инстансов
// используется RedisManager.
type MemoryManager struct {
	mu    sync.Mutex
	locks map[string]entry
	now   func() time.Time
}

// NewMemoryManager создает in-memory менеджер блокировок
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		locks: make(map[string]entry),
		now:   time.Now,
	}
}

// NewMemoryManagerWithClock создает менеджер с подменяемыми часами (для тестов)
func NewMemoryManagerWithClock(now func() time.Time) *MemoryManager {
	return &MemoryManager{
		locks: make(map[string]entry),
		now:   now,
	}
}

// Acquire захватывает или продлевает блокировку.
// Решение принимается под одним мьютексом: свободен/истек/свой holder - выдать.
func (m *MemoryManager) Acquire(_ context.Context, key, holder string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	if current, ok := m.locks[key]; ok && current.expiresAt.After(now) && current.holder != holder {
		return ErrAlreadyLocked
	}

	m.locks[key] = entry{
		holder:    holder,
		expiresAt: now.Add(ttl),
	}

	return nil
}

// Release снимает блокировку, только если она принадлежит holder
func (m *MemoryManager) Release(_ context.Context, key, holder string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.locks[key]
	if !ok || !current.expiresAt.After(m.now()) {
		// Истекшую запись убираем, чтобы карта не росла
		delete(m.locks, key)
		return ErrNotHeld
	}

	if current.holder != holder {
		return ErrAlreadyLocked
	}

	delete(m.locks, key)
	return nil
}

// Holder возвращает владельца активной блокировки
func (m *MemoryManager) Holder(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.locks[key]
	if !ok || !current.expiresAt.After(m.now()) {
		delete(m.locks, key)
		return "", ErrNotHeld
	}

	return current.holder, nil
}
