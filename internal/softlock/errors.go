package softlock

import "errors"

var (
	// ErrAlreadyLocked ключ занят другим holder - бизнес-исход, не сбой
	ErrAlreadyLocked = errors.New("softlock: key is locked by another holder")

	// ErrNotHeld блокировка отсутствует или истекла
	ErrNotHeld = errors.New("softlock: lock is not held")
)
