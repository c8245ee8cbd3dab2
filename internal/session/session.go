// Package session tracks the remote players connected to the SSH server.
package session

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ID uniquely identifies one SSH connection.
type ID string

// NewID returns a random session ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Short returns the first eight characters of the ID, for logs and the HUD.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// Info describes a connected session.
type Info struct {
	ID         ID
	User       string
	RemoteAddr string
	Mode       string // game mode being played, empty while in the menu
	StartedAt  time.Time
}

// Registry tracks active sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]Info
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ID]Info),
		now:      time.Now,
	}
}

// Open registers a new session and returns its info.
func (r *Registry) Open(user, remoteAddr string) Info {
	info := Info{
		ID:         NewID(),
		User:       user,
		RemoteAddr: remoteAddr,
		StartedAt:  r.now(),
	}
	r.mu.Lock()
	r.sessions[info.ID] = info
	r.mu.Unlock()
	return info
}

// SetMode records which game mode a session is playing.
func (r *Registry) SetMode(id ID, mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.sessions[id]; ok {
		info.Mode = mode
		r.sessions[id] = info
	}
}

// Close removes a session and reports how long it lasted.
func (r *Registry) Close(id ID) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.sessions[id]
	if !ok {
		return 0, false
	}
	delete(r.sessions, id)
	return r.now().Sub(info.StartedAt), true
}

// Get returns the session with the given ID.
func (r *Registry) Get(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.sessions[id]
	return info, ok
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns all active sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	out := make([]Info, 0, len(r.sessions))
	for _, info := range r.sessions {
		out = append(out, info)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Info) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
