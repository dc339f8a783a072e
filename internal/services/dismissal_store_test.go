package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDismissalStore_DismissAndClear(t *testing.T) {
	store := NewDismissalStore()
	id := uuid.New()

	assert.False(t, store.IsDismissed(id))
	assert.Zero(t, store.Len())

	store.Dismiss(id)
	assert.True(t, store.IsDismissed(id))
	assert.Equal(t, 1, store.Len())

	// Dismissing twice is idempotent.
	store.Dismiss(id)
	assert.Equal(t, 1, store.Len())

	store.Clear()
	assert.False(t, store.IsDismissed(id))
	assert.Zero(t, store.Len())
}

func TestDismissalStore_ConcurrentWriters(t *testing.T) {
	store := NewDismissalStore()

	const writers = 16
	const perWriter = 50
	ids := make([][]uuid.UUID, writers)
	for w := range ids {
		ids[w] = make([]uuid.UUID, perWriter)
		for i := range ids[w] {
			ids[w][i] = uuid.New()
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for _, id := range ids[w] {
				store.Dismiss(id)
				store.IsDismissed(id)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, store.Len())
	for w := range ids {
		for _, id := range ids[w] {
			assert.True(t, store.IsDismissed(id))
		}
	}
}
