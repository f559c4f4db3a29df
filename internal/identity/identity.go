// Package identity tracks which user, if any, the current session acts for.
package identity

import (
	"sync"
)

// Identity is the signed-in user. An empty UID means unauthenticated.
type Identity struct {
	UID string
}

// Authenticated reports whether a user is signed in.
func (i Identity) Authenticated() bool {
	return i.UID != ""
}

// Provider supplies the current identity and notifies on changes.
type Provider interface {
	Current() Identity
	// Watch calls fn on every identity change until stop is called.
	Watch(fn func(Identity)) (stop func())
}

// Source is a settable Provider. Watchers run synchronously inside Set, in registration order.
type Source struct {
	mu       sync.Mutex
	current  Identity
	watchers map[uint64]func(Identity)
	order    []uint64
	nextID   uint64
}

// NewSource creates a Source starting at the given identity.
func NewSource(initial Identity) *Source {
	return &Source{
		current:  initial,
		watchers: make(map[uint64]func(Identity)),
	}
}

// Current returns the active identity.
func (s *Source) Current() Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set switches the identity. Setting the same identity again notifies nobody.
func (s *Source) Set(id Identity) {
	s.mu.Lock()
	if s.current == id {
		s.mu.Unlock()
		return
	}
	s.current = id
	fns := make([]func(Identity), 0, len(s.order))
	for _, wid := range s.order {
		if fn, ok := s.watchers[wid]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// SignOut clears the identity.
func (s *Source) SignOut() {
	s.Set(Identity{})
}

// Watch registers fn for identity changes.
func (s *Source) Watch(fn func(Identity)) (stop func()) {
	s.mu.Lock()
	s.nextID++
	wid := s.nextID
	s.watchers[wid] = fn
	s.order = append(s.order, wid)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.watchers, wid)
			for i, id := range s.order {
				if id == wid {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Static is a Provider whose identity never changes, used for request-scoped
// consumers such as the profile event stream.
type Static Identity

// Current returns the fixed identity.
func (s Static) Current() Identity { return Identity(s) }

// Watch never fires.
func (s Static) Watch(func(Identity)) func() { return func() {} }

// Compile-time interface checks
var (
	_ Provider = (*Source)(nil)
	_ Provider = Static{}
)
