package recommendation

import "sync"

// userLocks serializes recalculations per user so two concurrent triggers
// for the same user cannot interleave their delete/insert phases.
// Different users proceed in parallel. Entries are kept for the process
// lifetime; the map is bounded by the number of distinct users seen.
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[int64]*sync.Mutex)
	}
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
