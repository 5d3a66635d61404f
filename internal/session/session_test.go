package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsUniqueIDs(t *testing.T) {
	store := NewStore()

	a := store.Create()
	b := store.Create()

	require.NotEmpty(t, a.ID)
	require.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, store.Len())
}

func TestGetDistinguishesMissingFromAnonymous(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	// Present but no user attached: found, not authenticated.
	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	_, authed := store.UserID(got)
	assert.False(t, authed)

	// Absent id: not found at all.
	_, ok = store.Get("nope")
	assert.False(t, ok)
}

func TestSetUserIDMarksAuthenticated(t *testing.T) {
	store := NewStore()
	sess := store.Create()

	store.SetUserID(sess, 42)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	id, authed := store.UserID(got)
	require.True(t, authed)
	assert.Equal(t, uint64(42), id)
}

func TestDestroyRemovesSession(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	store.SetUserID(sess, 7)

	store.Destroy(sess.ID)

	_, ok := store.Get(sess.ID)
	assert.False(t, ok)

	// Destroying an unknown id must not panic or error.
	store.Destroy(sess.ID)
	assert.Equal(t, 0, store.Len())
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n uint64) {
			defer wg.Done()
			sess := store.Create()
			store.SetUserID(sess, n)
			got, ok := store.Get(sess.ID)
			if !ok {
				t.Errorf("session %s vanished", sess.ID)
				return
			}
			if id, _ := store.UserID(got); id != n {
				t.Errorf("got user %d, want %d", id, n)
			}
			store.Destroy(sess.ID)
		}(uint64(i))
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}
