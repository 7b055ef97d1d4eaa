// Package session owns the process-wide authentication state: the bearer
// token and role list every outgoing call reads. There is exactly one
// Manager per process, passed by reference to whatever issues network calls;
// a 401 anywhere clears it and every subscriber hears about it at once.
package session

import (
	"fmt"
	"sync"
)

// Session is the authenticated state persisted across runs.
type Session struct {
	Token string
	Roles []string
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// HasRole reports whether the session carries the given role.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Store is the durable backing for the session (see adapters/sqlite).
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// Manager is the single owned instance of authentication state. Reads are
// cheap; Set and Clear persist through the Store and then notify
// subscribers outside the lock.
type Manager struct {
	store Store

	mu   sync.RWMutex
	cur  Session
	subs []func(Session)
}

// NewManager builds a Manager seeded from the store's persisted session.
func NewManager(store Store) (*Manager, error) {
	cur, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &Manager{store: store, cur: cur}, nil
}

// Current returns a copy of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.cur
	s.Roles = append([]string(nil), m.cur.Roles...)
	return s
}

// Token returns the current bearer token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur.Token
}

// Authenticated reports whether a token is currently held.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Set replaces the session and persists it.
func (m *Manager) Set(token string, roles []string) error {
	next := Session{Token: token, Roles: append([]string(nil), roles...)}
	if err := m.store.Save(next); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.mu.Lock()
	m.cur = next
	subs := make([]func(Session), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Clear drops the session, both in memory and durably. Called on logout and
// on any 401; afterwards no call may assume it is authenticated.
func (m *Manager) Clear() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.mu.Lock()
	m.cur = Session{}
	subs := make([]func(Session), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(Session{})
	}
	return nil
}

// Subscribe registers fn to run after every Set or Clear. Subscribers are
// invoked without the manager lock held and must not block for long.
func (m *Manager) Subscribe(fn func(Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}
