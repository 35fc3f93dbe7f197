package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry(fakeEngine{})

	s1 := r.GetOrCreate("m1")
	require.NotNil(t, s1)
	assert.Equal(t, StatusWaiting, s1.status)
	assert.Empty(t, s1.players)
	assert.Equal(t, "fen-0", s1.board.FEN(), "fresh board")

	s2 := r.GetOrCreate("m1")
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryLookupAndRemove(t *testing.T) {
	r := NewRegistry(fakeEngine{})

	_, ok := r.Lookup("m1")
	assert.False(t, ok)

	r.GetOrCreate("m1")
	_, ok = r.Lookup("m1")
	assert.True(t, ok)

	r.Remove("m1")
	_, ok = r.Lookup("m1")
	assert.False(t, ok)

	// removing a missing id is a no-op
	r.Remove("m1")
	r.Remove("never-existed")
	assert.Equal(t, 0, r.Len())
}

func TestRegistryReapsIdleSessions(t *testing.T) {
	r := NewRegistry(fakeEngine{})
	room := &recorder{}

	idle := r.GetOrCreate("stale")
	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-2 * time.Hour)
	idle.mu.Unlock()

	fresh := r.GetOrCreate("fresh")
	_ = fresh

	r.reapIdle(time.Hour, room)

	_, ok := r.Lookup("stale")
	assert.False(t, ok)
	_, ok = r.Lookup("fresh")
	assert.True(t, ok)

	idle.mu.Lock()
	assert.Equal(t, StatusEnded, idle.status, "reaped session is terminal")
	idle.mu.Unlock()

	// the stale room is told, the fresh one hears nothing
	events := room.all()
	require.Len(t, events, 1)
	assert.Equal(t, "stale", events[0].MatchID)
	assert.Equal(t, EventError, events[0].Event)
}

func TestRegistryReaperLifecycle(t *testing.T) {
	r := NewRegistry(fakeEngine{})

	// zero idle timeout disables the reaper entirely
	r.StartReaper(0, time.Millisecond, nil)
	assert.Nil(t, r.reaperStop)
	r.StopReaper()

	r.StartReaper(time.Hour, 10*time.Millisecond, nil)
	require.NotNil(t, r.reaperStop)
	r.StopReaper()
	assert.Nil(t, r.reaperStop)
}
