package docstore

import (
	"context"
	"sync"
)

type memWatcher struct {
	sub     *Subscription
	onNext  NextFunc
	onError ErrorFunc
}

// Memory is an in-process Store. Deliveries run synchronously on the goroutine that
// changed the document, after the store's lock is released. Subscribe delivers the
// current state immediately, as Firestore listeners do.
type Memory struct {
	mu       sync.Mutex
	docs     map[string]Fields
	watchers map[string]map[uint64]*memWatcher
	nextID   uint64
	readErr  error
	reads    int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		docs:     make(map[string]Fields),
		watchers: make(map[string]map[uint64]*memWatcher),
	}
}

func key(collection, id string) string {
	return collection + "/" + id
}

// Read returns a copy of the stored document, or the error set by FailReads.
func (m *Memory) Read(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return Document{}, m.readErr
	}
	f, ok := m.docs[key(collection, id)]
	if !ok {
		return Document{}, nil
	}
	return Document{Exists: true, Fields: cloneFields(f)}, nil
}

// Subscribe registers a watcher and delivers the current document state.
func (m *Memory) Subscribe(collection, id string, onNext NextFunc, onError ErrorFunc) *Subscription {
	k := key(collection, id)

	m.mu.Lock()
	m.nextID++
	wid := m.nextID
	w := &memWatcher{onNext: onNext, onError: onError}
	w.sub = NewSubscription(func() { m.removeWatcher(k, wid) })
	if m.watchers[k] == nil {
		m.watchers[k] = make(map[uint64]*memWatcher)
	}
	m.watchers[k][wid] = w
	current := cloneFields(m.docs[k])
	m.mu.Unlock()

	if w.sub.Active() {
		w.onNext(current)
	}
	return w.sub
}

// Put replaces a document and notifies its watchers.
func (m *Memory) Put(collection, id string, fields Fields) {
	k := key(collection, id)
	m.mu.Lock()
	m.docs[k] = cloneFields(fields)
	if m.docs[k] == nil {
		m.docs[k] = Fields{}
	}
	targets := m.snapshotWatchers(k)
	m.mu.Unlock()

	for _, w := range targets {
		if w.sub.Active() {
			w.onNext(cloneFields(fields))
		}
	}
}

// Merge sets the given fields on an existing or new document and notifies watchers.
func (m *Memory) Merge(collection, id string, fields Fields) {
	k := key(collection, id)
	m.mu.Lock()
	doc := cloneFields(m.docs[k])
	if doc == nil {
		doc = Fields{}
	}
	for f, v := range fields {
		doc[f] = v
	}
	m.docs[k] = doc
	targets := m.snapshotWatchers(k)
	m.mu.Unlock()

	for _, w := range targets {
		if w.sub.Active() {
			w.onNext(cloneFields(doc))
		}
	}
}

// Delete removes a document and notifies watchers with a nil mapping.
func (m *Memory) Delete(collection, id string) {
	k := key(collection, id)
	m.mu.Lock()
	delete(m.docs, k)
	targets := m.snapshotWatchers(k)
	m.mu.Unlock()

	for _, w := range targets {
		if w.sub.Active() {
			w.onNext(nil)
		}
	}
}

// Fail reports err to every watcher of the document and ends their subscriptions.
func (m *Memory) Fail(collection, id string, err error) {
	k := key(collection, id)
	m.mu.Lock()
	targets := m.snapshotWatchers(k)
	delete(m.watchers, k)
	m.mu.Unlock()

	for _, w := range targets {
		if w.sub.Active() {
			w.onError(err)
		}
	}
}

// FailReads makes subsequent reads return err. Pass nil to restore normal reads.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// Watchers returns the number of attached watchers on a document.
func (m *Memory) Watchers(collection, id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.watchers[key(collection, id)])
}

// Reads returns how many one-shot reads were served.
func (m *Memory) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}

func (m *Memory) snapshotWatchers(k string) []*memWatcher {
	out := make([]*memWatcher, 0, len(m.watchers[k]))
	for _, w := range m.watchers[k] {
		out = append(out, w)
	}
	return out
}

func (m *Memory) removeWatcher(k string, wid uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watchers[k], wid)
	if len(m.watchers[k]) == 0 {
		delete(m.watchers, k)
	}
}

// Compile-time interface check
var _ Store = (*Memory)(nil)
