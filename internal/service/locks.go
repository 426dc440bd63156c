package service

import (
	"sync"

	"github.com/google/uuid"
)

// habitLocks serializes toggle sequences per habit. Every habit has exactly
// one owner, so keying by habit id also scopes the lock to a single user
type habitLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newHabitLocks() *habitLocks {
	return &habitLocks{
		locks: make(map[uuid.UUID]*lockEntry),
	}
}

// Lock blocks until the habit's mutation scope is free and returns its release func
func (hl *habitLocks) Lock(habitID uuid.UUID) func() {
	hl.mu.Lock()
	entry, ok := hl.locks[habitID]
	if !ok {
		entry = &lockEntry{}
		hl.locks[habitID] = entry
	}
	entry.refs++
	hl.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		hl.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(hl.locks, habitID)
		}
		hl.mu.Unlock()
	}
}
