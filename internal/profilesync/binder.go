package profilesync

import (
	"sync"

	"github.com/janisto/meal-planner/internal/identity"
)

// Binder keeps a Store subscribed to whichever user the identity provider reports.
// On every change the previous subscription is detached before the next one opens.
type Binder struct {
	store *Store

	mu          sync.Mutex
	unsubscribe Unsubscribe
	stopWatch   func()
	closed      bool
}

// Bind subscribes store to provider's current identity and follows its changes
// until Close.
func Bind(store *Store, provider identity.Provider) *Binder {
	b := &Binder{store: store}
	stop := provider.Watch(b.rebind)
	b.mu.Lock()
	b.stopWatch = stop
	b.mu.Unlock()

	b.rebind(provider.Current())
	return b
}

func (b *Binder) rebind(id identity.Identity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.unsubscribe = b.store.Subscribe(id.UID)
}

// Close detaches the subscription and stops following identity changes.
func (b *Binder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.stopWatch != nil {
		b.stopWatch()
	}
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}
