package realtime

import (
	"errors"
	"sync"
)

// ErrSessionNotFound is returned by SessionOwner for unregistered handles.
// Disconnect cleanup treats it as benign: the session was already removed by
// an explicit logout.
var ErrSessionNotFound = errors.New("realtime: session not registered")

// Presence is the authoritative mapping from user identity to live session
// handles. A user is online iff at least one session is registered; the
// persisted online flag is an eventually-consistent projection maintained by
// the caller on first/last transitions.
//
// Transitions for one user are serialized by a per-user keyed mutex so
// near-simultaneous login and disconnect for the same user cannot double-emit
// a transition. Independent users never contend on the transition locks.
type Presence struct {
	locks *KeyedMutex

	mu     sync.RWMutex
	users  map[string]map[string]struct{} // userID -> set of sessionIDs
	owners map[string]string              // sessionID -> userID
}

// NewPresence constructs an empty registry.
func NewPresence() *Presence {
	return &Presence{
		locks:  NewKeyedMutex(),
		users:  make(map[string]map[string]struct{}),
		owners: make(map[string]string),
	}
}

// MarkOnline registers the session under the user. Duplicate registration of
// the same session is idempotent. Returns true only when this is the user's
// first live session, i.e. the offline-to-online transition the caller must
// broadcast and persist.
func (p *Presence) MarkOnline(userID, sessionID string) bool {
	p.locks.Lock(userID)
	defer p.locks.Unlock(userID)

	p.mu.Lock()
	defer p.mu.Unlock()

	sessions := p.users[userID]
	if sessions == nil {
		sessions = make(map[string]struct{})
		p.users[userID] = sessions
	}
	first := len(sessions) == 0
	sessions[sessionID] = struct{}{}
	p.owners[sessionID] = userID
	return first
}

// MarkOffline removes the session from the user. Removing an unregistered
// session is a no-op. Returns true only when the user's last session was
// removed, i.e. the online-to-offline transition.
func (p *Presence) MarkOffline(userID, sessionID string) bool {
	p.locks.Lock(userID)
	defer p.locks.Unlock(userID)

	p.mu.Lock()
	defer p.mu.Unlock()

	sessions := p.users[userID]
	if sessions == nil {
		return false
	}
	if _, ok := sessions[sessionID]; !ok {
		return false
	}
	delete(sessions, sessionID)
	if owner, ok := p.owners[sessionID]; ok && owner == userID {
		delete(p.owners, sessionID)
	}
	if len(sessions) == 0 {
		delete(p.users, userID)
		return true
	}
	return false
}

// SnapshotOnline returns the current set of online user IDs, used by newly
// connected sessions to bootstrap their view.
func (p *Presence) SnapshotOnline() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, 0, len(p.users))
	for userID := range p.users {
		out = append(out, userID)
	}
	return out
}

// SessionOwner resolves the user owning a session handle, for disconnect
// cleanup. Returns ErrSessionNotFound when the handle is unregistered.
func (p *Presence) SessionOwner(sessionID string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	userID, ok := p.owners[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	return userID, nil
}
