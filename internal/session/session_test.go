package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsUUID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(string(id))
	require.NoError(t, err)
	assert.NotEqual(t, id, NewID())
	assert.Len(t, id.Short(), 8)
	assert.Equal(t, "abc", ID("abc").Short())
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	a := r.Open("alice", "10.0.0.1:5000")
	clock = clock.Add(time.Second)
	b := r.Open("bob", "10.0.0.2:5000")

	require.Equal(t, 2, r.Count())
	r.SetMode(a.ID, "sprint")

	got, ok := r.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "sprint", got.Mode)
	assert.Equal(t, "alice", got.User)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	clock = clock.Add(time.Minute)
	lasted, ok := r.Close(a.ID)
	require.True(t, ok)
	assert.Equal(t, time.Minute+time.Second, lasted)

	_, ok = r.Close(a.ID)
	assert.False(t, ok, "closing twice should report false")
	assert.Equal(t, 1, r.Count())

	r.SetMode("missing", "marathon")
	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info := r.Open("user", "addr")
			r.SetMode(info.ID, "marathon")
			r.List()
			r.Close(info.ID)
		}()
	}
	wg.Wait()
	assert.Zero(t, r.Count())
}
