package profilesync

import (
	"context"

	"github.com/janisto/meal-planner/internal/identity"
	"github.com/janisto/meal-planner/internal/platform/docstore"
)

// Session is one mounted profile view: a store bound to the identity provider plus
// the reconciler that saves its drafts.
type Session struct {
	store      *Store
	binder     *Binder
	reconciler *Reconciler
	provider   identity.Provider
}

// Mount creates a store for the provider's identity and starts following it.
func Mount(docs docstore.Store, updater Updater, provider identity.Provider, opts ...Option) *Session {
	store := NewStore(docs, opts...)
	return &Session{
		store:      store,
		binder:     Bind(store, provider),
		reconciler: NewReconciler(updater, store),
		provider:   provider,
	}
}

// Store exposes the underlying store.
func (s *Session) Store() *Store { return s.store }

// State returns the current profile state.
func (s *Session) State() State { return s.store.State() }

// Identity returns the identity the session currently follows.
func (s *Session) Identity() identity.Identity { return s.provider.Current() }

// Refresh re-reads the profile.
func (s *Session) Refresh(ctx context.Context) { s.store.Refresh(ctx) }

// Save writes draft against the latest snapshot for the current identity. When the
// identity has moved on from the user the store is bound to, the snapshot belongs to
// someone else and nothing is written: the result is NotAuthenticated.
func (s *Session) Save(ctx context.Context, draft Draft) SaveResult {
	uid, snapshot := s.store.bound()
	id := s.provider.Current()
	if id.UID != uid {
		return SaveResult{Outcome: NotAuthenticated}
	}
	return s.reconciler.Save(ctx, draft, snapshot, id)
}

// Close unmounts the session.
func (s *Session) Close() { s.binder.Close() }
