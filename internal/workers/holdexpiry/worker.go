// Package holdexpiry фоновая зачистка просроченных pending броней.
// Доступность слотов не зависит от этого воркера: проекция и резервирование
// сами игнорируют брони с истекшим окном оплаты. Зачистка лишь фиксирует
// терминальный статус expired и снимает осиротевшие блокировки.
package holdexpiry

import (
	"context"
	"errors"
	"time"

	"github.com/alexsmw/PlayPoint-VenueBooking/internal/domain"
	"github.com/alexsmw/PlayPoint-VenueBooking/internal/softlock"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExpireLapsed(ctx context.Context, now time.Time) ([]*domain.Booking, error)
}

// LockManager интерфейс менеджера мягких блокировок слотов
type LockManager interface {
	Release(ctx context.Context, key, holder string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Worker периодически переводит просроченные pending брони в expired
type Worker struct {
	bookingRepo  BookingRepository
	locks        LockManager
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger

	stop chan struct{}
	done chan struct{}
}

// NewWorker создает новый экземпляр воркера
func NewWorker(
	bookingRepo BookingRepository,
	locks LockManager,
	interval time.Duration,
	logger Logger,
) *Worker {
	return &Worker{
		bookingRepo:  bookingRepo,
		locks:        locks,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,

		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start запускает цикл зачистки в отдельной горутине
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop останавливает воркер и дожидается завершения текущего прохода
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	w.logger.Info("HoldExpiry: worker started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-w.stop:
			w.logger.Info("HoldExpiry: worker stopped")
			return
		case <-ctx.Done():
			w.logger.Info("HoldExpiry: context cancelled, worker stopped")
			return
		}
	}
}

// sweep выполняет один проход зачистки
func (w *Worker) sweep(ctx context.Context) {
	now := w.timeProvider.Now()

	expired, err := w.bookingRepo.ExpireLapsed(ctx, now)
	if err != nil {
		w.logger.Error("HoldExpiry: failed to expire lapsed bookings: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	w.logger.Info("HoldExpiry: expired %d lapsed bookings", len(expired))

	// Снимаем осиротевшие блокировки. Блокировка с тем же TTL, что и окно
	// оплаты, обычно уже истекла сама - ErrNotHeld здесь штатный исход
	for _, b := range expired {
		key := b.SlotKey().String()
		if err := w.locks.Release(ctx, key, b.Reference); err != nil && !errors.Is(err, softlock.ErrNotHeld) {
			w.logger.Warn("HoldExpiry: failed to release lock on %s: %v", key, err)
		}
	}
}
