package statement

import (
	"sync"

	"github.com/google/uuid"
)

// userLocks hands out one mutex per user id. Entries are created on demand
// and removed as soon as the last holder releases them, so the map doesn't
// grow with the number of users ever seen.
type userLocks struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{entries: map[uuid.UUID]*lockEntry{}}
}

// lock blocks until the per-user mutex is acquired and returns the release
// function
func (l *userLocks) lock(userID uuid.UUID) (unlock func()) {
	l.mu.Lock()
	e, ok := l.entries[userID]
	if !ok {
		e = &lockEntry{}
		l.entries[userID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, userID)
		}
		l.mu.Unlock()
	}
}
