package service

import "sync"

// itemLocks сериализует check-then-act по конкретной вещи: проверка
// пересечений и запись выполняются под одним замком.
type itemLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newItemLocks() *itemLocks {
	return &itemLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *itemLocks) lock(itemID int64) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[itemID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[itemID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
