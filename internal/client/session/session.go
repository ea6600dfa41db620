// Package session keeps the client-side account state: the currently
// signed-in user, its bearer token persisted across restarts, and the
// refreshers that reload per-user caches whenever the signed-in user
// changes.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// User is the client's view of a signed-in account, as returned by the
// register and login endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	KnownAs  string `json:"knownAs"`
	Token    string `json:"token"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// Refresher reloads a per-user cache for the user owning the given token.
// Refresh runs on its own goroutine; implementations must check the
// generation against the store before publishing results, so that a
// refresh outpaced by a newer sign-in discards its data instead of
// overwriting the newer user's cache.
type Refresher interface {
	Refresh(generation uint64, token string)
}

// Store holds the current user and fans sign-in events out to the
// registered refreshers. Safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	path       string
	current    *User
	generation uint64
	refreshers []Refresher
}

// NewStore creates a store persisting the signed-in user to the JSON
// file at path. No user is loaded; call Load to rehydrate.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// AddRefresher registers a cache to be reloaded on every sign-in.
func (s *Store) AddRefresher(r Refresher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshers = append(s.refreshers, r)
}

// SetCurrentUser installs the user as the signed-in account, persists it
// and kicks off the registered refreshers. The refreshers run in the
// background; SetCurrentUser returns without waiting for them.
func (s *Store) SetCurrentUser(user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &user
	s.generation++
	generation := s.generation
	refreshers := make([]Refresher, len(s.refreshers))
	copy(refreshers, s.refreshers)
	s.mu.Unlock()

	for _, r := range refreshers {
		go r.Refresh(generation, user.Token)
	}

	return nil
}

// CurrentUser returns the signed-in user, or nil when signed out.
func (s *Store) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// Token returns the bearer token of the signed-in user, or "" when signed
// out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Generation returns the current sign-in generation. A refresher
// compares this against the generation it was launched with before
// publishing its results.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Logout clears the signed-in user and removes the persisted file. The
// generation is bumped so refreshes still in flight discard their
// results on arrival.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.current = nil
	s.generation++
	s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Load rehydrates the signed-in user from the persisted file. An absent
// file leaves the store signed out and is not an error. Refreshers run
// as on SetCurrentUser so caches match the restored user.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &user
	s.generation++
	generation := s.generation
	refreshers := make([]Refresher, len(s.refreshers))
	copy(refreshers, s.refreshers)
	s.mu.Unlock()

	for _, r := range refreshers {
		go r.Refresh(generation, user.Token)
	}

	return nil
}
