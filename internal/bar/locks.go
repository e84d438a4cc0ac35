package bar

import "sync"

// patronLocks serializes the read-modify-write cycle per user id. Lost
// updates to the activity counter would silently defeat the pour cadence,
// so load, evaluate and save must run as one critical section. No
// cross-user locking: each patron has their own mutex, created on first
// use and kept for the life of the process.
type patronLocks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func (l *patronLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.held[userID]
	if !ok {
		m = &sync.Mutex{}
		l.held[userID] = m
	}
	return m
}

// LockPatron enters the critical section for a user and returns the
// release. The release must run even when the evaluation fails, or the
// patron's events stall forever.
func (e *Engine) LockPatron(userID string) func() {
	m := e.locks.get(userID)
	m.Lock()
	return m.Unlock
}
