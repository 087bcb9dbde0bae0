// internal/bot/session/store_test.go
package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetCreatesEmptyContext(t *testing.T) {
	store := NewStore()

	ctx := store.Get("5511999990000")

	assert.Equal(t, "", ctx.LastEntity)
	assert.Equal(t, 1, store.Len())
}

func TestStore_SetAndClearLastEntity(t *testing.T) {
	store := NewStore()

	store.SetLastEntity("user-a", "pikachu")
	assert.Equal(t, "pikachu", store.Get("user-a").LastEntity)

	store.SetLastEntity("user-a", "charmander")
	assert.Equal(t, "charmander", store.Get("user-a").LastEntity)

	store.ClearLastEntity("user-a")
	assert.Equal(t, "", store.Get("user-a").LastEntity)
}

func TestStore_UsersAreIsolated(t *testing.T) {
	store := NewStore()

	store.SetLastEntity("user-a", "pikachu")
	store.SetLastEntity("user-b", "squirtle")
	store.ClearLastEntity("user-b")

	assert.Equal(t, "pikachu", store.Get("user-a").LastEntity)
	assert.Equal(t, "", store.Get("user-b").LastEntity)
	assert.Equal(t, 2, store.Len())
}

func TestStore_ClearUnknownUserIsNoOp(t *testing.T) {
	store := NewStore()

	store.ClearLastEntity("nobody")

	assert.Equal(t, 0, store.Len())
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.SetLastEntity("user-a", "pikachu")

	snapshot := store.Get("user-a")
	snapshot.LastEntity = "mewtwo"

	assert.Equal(t, "pikachu", store.Get("user-a").LastEntity)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n%10)
			store.Get(user)
			store.SetLastEntity(user, "pikachu")
			store.Get(user)
			store.ClearLastEntity(user)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, store.Len())
}
