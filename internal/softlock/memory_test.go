package softlock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "res:42:2026-02-16:10:00-11:00"

// fakeClock управляемые часы для проверки истечения TTL
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestAcquireAndHolder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))

	holder, err := m.Holder(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "BK-aaa", holder)
}

func TestAcquireConflict(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))

	err := m.Acquire(ctx, testKey, "BK-bbb", 5*time.Minute)
	assert.ErrorIs(t, err, ErrAlreadyLocked)

	// Исходная блокировка не пострадала
	holder, err := m.Holder(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "BK-aaa", holder)
}

func TestAcquireSameHolderRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemoryManagerWithClock(clock.Now)

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))

	// Через 4 минуты повторный захват тем же holder продлевает окно
	clock.Advance(4 * time.Minute)
	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))

	// Еще через 4 минуты исходный TTL истек бы, но блокировка жива
	clock.Advance(4 * time.Minute)
	holder, err := m.Holder(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "BK-aaa", holder)
}

func TestAcquireAfterExpiry(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemoryManagerWithClock(clock.Now)

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))

	// После истечения TTL другой holder захватывает ключ
	clock.Advance(5*time.Minute + time.Second)

	_, err := m.Holder(ctx, testKey)
	assert.ErrorIs(t, err, ErrNotHeld)

	require.NoError(t, m.Acquire(ctx, testKey, "BK-bbb", 5*time.Minute))

	holder, err := m.Holder(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "BK-bbb", holder)
}

func TestReleaseByHolder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))
	require.NoError(t, m.Release(ctx, testKey, "BK-aaa"))

	_, err := m.Holder(ctx, testKey)
	assert.ErrorIs(t, err, ErrNotHeld)
}

func TestReleaseByForeignHolder(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", 5*time.Minute))

	err := m.Release(ctx, testKey, "BK-bbb")
	assert.ErrorIs(t, err, ErrAlreadyLocked)

	// Блокировка осталась у владельца
	holder, err := m.Holder(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, "BK-aaa", holder)
}

func TestReleaseExpiredLock(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	m := NewMemoryManagerWithClock(clock.Now)

	require.NoError(t, m.Acquire(ctx, testKey, "BK-aaa", time.Minute))
	clock.Advance(2 * time.Minute)

	assert.ErrorIs(t, m.Release(ctx, testKey, "BK-aaa"), ErrNotHeld)
}

func TestConcurrentAcquireSingleWinner(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	const goroutines = 32

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := make([]string, 0, 1)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			holder := string(rune('A' + n))
			if err := m.Acquire(ctx, testKey, holder, 5*time.Minute); err == nil {
				mu.Lock()
				winners = append(winners, holder)
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()

	// Ровно один победитель, и именно он числится владельцем
	require.Len(t, winners, 1)
	holder, err := m.Holder(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, winners[0], holder)
}

func TestIndependentKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	require.NoError(t, m.Acquire(ctx, "res:1:2026-02-16:10:00-11:00", "BK-aaa", time.Minute))
	require.NoError(t, m.Acquire(ctx, "res:1:2026-02-16:11:00-12:00", "BK-bbb", time.Minute))
	require.NoError(t, m.Acquire(ctx, "res:2:2026-02-16:10:00-11:00", "BK-ccc", time.Minute))
}
