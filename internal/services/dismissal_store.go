package services

import (
	"sync"

	"github.com/google/uuid"
)

// DismissalStore holds the set of dismissed anomaly expense IDs. It is the
// only mutable state in the analytics engine that outlives a request, so it
// is owned explicitly and injected into the anomaly detector. A dismissal
// must be visible to the next detection call and must not be lost under
// concurrent writers.
type DismissalStore struct {
	mu        sync.RWMutex
	dismissed map[uuid.UUID]struct{}
}

// NewDismissalStore creates an empty dismissal store
func NewDismissalStore() *DismissalStore {
	return &DismissalStore{
		dismissed: make(map[uuid.UUID]struct{}),
	}
}

// Dismiss marks the expense ID as dismissed
func (ds *DismissalStore) Dismiss(expenseID uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.dismissed[expenseID] = struct{}{}
}

// IsDismissed reports whether the expense ID has been dismissed
func (ds *DismissalStore) IsDismissed(expenseID uuid.UUID) bool {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	_, ok := ds.dismissed[expenseID]
	return ok
}

// Clear empties the dismissed set
func (ds *DismissalStore) Clear() {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.dismissed = make(map[uuid.UUID]struct{})
}

// Len returns the number of dismissed IDs
func (ds *DismissalStore) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.dismissed)
}
