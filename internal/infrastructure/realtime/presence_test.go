package realtime

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceFirstAndLastSessionTransitions(t *testing.T) {
	p := NewPresence()

	assert.True(t, p.MarkOnline("alice", "s1"), "first session must report the online transition")
	assert.False(t, p.MarkOnline("alice", "s2"), "second session is not a transition")
	assert.False(t, p.MarkOnline("alice", "s2"), "duplicate registration is idempotent")

	assert.ElementsMatch(t, []string{"alice"}, p.SnapshotOnline())

	assert.False(t, p.MarkOffline("alice", "s1"), "a remaining session keeps the user online")
	assert.ElementsMatch(t, []string{"alice"}, p.SnapshotOnline())

	assert.True(t, p.MarkOffline("alice", "s2"), "removing the last session must report the offline transition")
	assert.Empty(t, p.SnapshotOnline())
}

func TestPresenceMarkOfflineUnregisteredIsNoop(t *testing.T) {
	p := NewPresence()

	assert.False(t, p.MarkOffline("alice", "never-registered"))

	p.MarkOnline("alice", "s1")
	assert.False(t, p.MarkOffline("alice", "other-session"), "unknown session for a known user is a no-op")
	assert.ElementsMatch(t, []string{"alice"}, p.SnapshotOnline())
}

func TestPresenceSessionOwner(t *testing.T) {
	p := NewPresence()
	p.MarkOnline("alice", "s1")

	owner, err := p.SessionOwner("s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)

	_, err = p.SessionOwner("unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	p.MarkOffline("alice", "s1")
	_, err = p.SessionOwner("s1")
	assert.ErrorIs(t, err, ErrSessionNotFound, "owner mapping must be cleaned with the session")
}

func TestPresenceSnapshotContainsAllOnlineUsers(t *testing.T) {
	p := NewPresence()
	p.MarkOnline("alice", "s1")
	p.MarkOnline("bob", "s2")
	p.MarkOnline("bob", "s3")

	assert.ElementsMatch(t, []string{"alice", "bob"}, p.SnapshotOnline())
}

func TestPresenceConcurrentLoginsSingleTransition(t *testing.T) {
	p := NewPresence()

	const sessions = 32
	var wg sync.WaitGroup
	firsts := make(chan bool, sessions)

	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			firsts <- p.MarkOnline("alice", sessionID(n))
		}(i)
	}
	wg.Wait()
	close(firsts)

	transitions := 0
	for first := range firsts {
		if first {
			transitions++
		}
	}
	assert.Equal(t, 1, transitions, "concurrent logins must yield exactly one online transition")

	lasts := 0
	var mu sync.Mutex
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if p.MarkOffline("alice", sessionID(n)) {
				mu.Lock()
				lasts++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, lasts, "concurrent disconnects must yield exactly one offline transition")
	assert.Empty(t, p.SnapshotOnline())
}

func sessionID(n int) string {
	return "session-" + strconv.Itoa(n)
}
