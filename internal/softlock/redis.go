package softlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix пространство ключей блокировок слотов в Redis
const keyPrefix = "slotlock:"

// acquireScript атомарный захват: выдать, если ключ свободен или уже наш.
// Истечение обеспечивает сам Redis через PX, отдельной проверки не нужно.
var acquireScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == false or current == ARGV[1] then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
	return 1
end
return 0
`)

// releaseScript снятие блокировки только владельцем (compare-and-delete)
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisManager распределенные блокировки слотов поверх Redis.
// Значение ключа - holder token, TTL задается при захвате.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager создает менеджер блокировок поверх готового клиента
func NewRedisManager(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

// Acquire захватывает или продлевает блокировку Lua скриптом
func (m *RedisManager) Acquire(ctx context.Context, key, holder string, ttl time.Duration) error {
	granted, err := acquireScript.Run(ctx, m.client, []string{keyPrefix + key}, holder, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("softlock: Acquire - run script: %w", err)
	}

	if granted == 0 {
		return ErrAlreadyLocked
	}

	return nil
}

// Release снимает блокировку, только если она принадлежит holder
func (m *RedisManager) Release(ctx context.Context, key, holder string) error {
	deleted, err := releaseScript.Run(ctx, m.client, []string{keyPrefix + key}, holder).Int()
	if err != nil {
		return fmt.Errorf("softlock: Release - run script: %w", err)
	}

	if deleted == 0 {
		// Ключ отсутствует (истек) либо занят другим holder
		current, err := m.client.Get(ctx, keyPrefix+key).Result()
		if err != nil {
			return ErrNotHeld
		}
		if current != holder {
			return ErrAlreadyLocked
		}
		return ErrNotHeld
	}

	return nil
}

// Holder возвращает владельца активной блокировки
func (m *RedisManager) Holder(ctx context.Context, key string) (string, error) {
	holder, err := m.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotHeld
	}
	if err != nil {
		return "", fmt.Errorf("softlock: Holder - get key: %w", err)
	}

	return holder, nil
}
