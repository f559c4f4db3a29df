package profilesync

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/janisto/meal-planner/internal/platform/docstore"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	"github.com/janisto/meal-planner/internal/service/profile"
)

// Unsubscribe detaches a live subscription. Calling it more than once is harmless.
type Unsubscribe func()

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for subscription and refresh faults.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store owns the profile state of one mount. It is safe for concurrent use; the
// mutex only keeps the triple consistent and does not order pushes against
// refreshes: whichever result is applied last is what consumers see.
type Store struct {
	docs   docstore.Store
	logger *zap.Logger

	mu    sync.Mutex
	state State
	uid   string
	// gen changes whenever the store is bound to a different uid. Subscriptions and
	// refreshes capture it and are dropped once it moves on.
	gen uint64
	// live is the token of the subscription allowed to write; 0 when none is.
	live      uint64
	nextSubID uint64
	detach    func()
	watchers  map[uint64]chan struct{}
	nextWID   uint64
}

// NewStore creates a store in its initial loading, all-empty state.
func NewStore(docs docstore.Store, opts ...Option) *Store {
	s := &Store{
		docs:     docs,
		logger:   applog.Logger(),
		state:    initialState(),
		watchers: make(map[uint64]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UID returns the identity the store is bound to, "" when unbound.
func (s *Store) UID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid
}

// bound returns the uid and snapshot together, so a save never pairs one user's
// snapshot with another user's identity.
func (s *Store) bound() (string, Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid, s.state.Snapshot
}

// Changes returns a channel that receives a signal after every state change.
// Signals coalesce; read State after receiving one. stop releases the channel.
func (s *Store) Changes() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.nextWID++
	wid := s.nextWID
	s.watchers[wid] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, wid)
			s.mu.Unlock()
		})
	}
}

// Subscribe opens a live subscription on Users/{uid}, replacing any subscription
// the store still holds.
//
// An empty uid opens nothing and leaves the store loading; if the store was bound to
// a user before, that user's data is cleared. Binding to a different uid resets the
// state first. Every push replaces the snapshot and clears the error; a delivery
// failure records the error and keeps the snapshot. Once the returned function has
// returned no delivery from this subscription touches the state, including one that
// was already in flight: liveness is checked under the same lock that applies the
// change.
func (s *Store) Subscribe(uid string) Unsubscribe {
	s.mu.Lock()
	previous := s.detach
	s.detach = nil
	s.nextSubID++
	token := s.nextSubID
	s.live = token
	if uid != s.uid {
		s.gen++
		s.uid = uid
		s.state = initialState()
	}
	if uid == "" {
		s.live = 0
		s.mu.Unlock()
		if previous != nil {
			previous()
		}
		s.notify()
		return func() {}
	}
	s.state.Loading = true
	if s.state.Phase == PhaseUninitialized {
		s.state.Phase = PhaseLoading
	}
	s.mu.Unlock()
	if previous != nil {
		previous()
	}
	s.notify()

	sub := s.docs.Subscribe(profile.UsersCollection, uid,
		func(f docstore.Fields) {
			snap := SnapshotFromFields(f)
			s.applyLive(token, func(st *State) {
				st.Snapshot = snap
				st.Loading = false
				st.Err = nil
				st.Phase = PhaseReady
			})
		},
		func(err error) {
			applied := s.applyLive(token, func(st *State) {
				st.Loading = false
				st.Err = &SubscriptionFault{UID: uid, Err: err}
				st.Phase = PhaseFailed
			})
			if applied {
				s.logger.Warn("profile subscription failed", zap.String("uid", uid), zap.Error(err))
			}
		},
	)

	unsubscribe := func() {
		s.mu.Lock()
		if s.live == token {
			s.live = 0
			s.detach = nil
		}
		s.mu.Unlock()
		sub.Detach()
	}

	s.mu.Lock()
	stale := s.live != token
	if !stale {
		s.detach = unsubscribe
	}
	s.mu.Unlock()
	if stale {
		sub.Detach()
	}
	return unsubscribe
}

// applyLive mutates the state if token is still the store's live subscription.
func (s *Store) applyLive(token uint64, mutate func(*State)) bool {
	s.mu.Lock()
	if s.live != token {
		s.mu.Unlock()
		return false
	}
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
	return true
}

// Refresh performs a one-shot read of the bound profile. It never fails: a read
// error is recorded in the state and the previous snapshot stays. Loading is false
// again by the time Refresh returns, unless the store was rebound meanwhile, in
// which case the result is discarded. Without a bound uid it does nothing.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	uid, gen := s.uid, s.gen
	if uid == "" {
		s.mu.Unlock()
		return
	}
	s.state.Loading = true
	s.state.Err = nil
	s.state.Phase = PhaseLoading
	s.mu.Unlock()
	s.notify()

	doc, err := s.docs.Read(ctx, profile.UsersCollection, uid)
	if err != nil {
		s.logger.Warn("profile refresh failed", zap.String("uid", uid), zap.Error(err))
		s.apply(gen, func(st *State) {
			st.Loading = false
			st.Err = &ReadFault{UID: uid, Err: err}
			st.Phase = PhaseFailed
		})
		return
	}

	snap := SnapshotFromFields(doc.Fields)
	s.apply(gen, func(st *State) {
		st.Snapshot = snap
		st.Loading = false
		st.Err = nil
		st.Phase = PhaseReady
	})
}

// apply mutates the state if the store is still bound to generation gen.
func (s *Store) apply(gen uint64, mutate func(*State)) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	mutate(&s.state)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
