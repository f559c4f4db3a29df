// Package docstore is the narrow document-database surface the live profile store
// depends on: one-shot reads and push subscriptions on a single document.
package docstore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrStreamClosed is reported when the backend ends a live subscription on its own.
var ErrStreamClosed = errors.New("document stream closed by backend")

// Fields is the raw field mapping of a document.
type Fields map[string]any

// Document is the result of a one-shot read. Fields is nil when Exists is false.
type Document struct {
	Exists bool
	Fields Fields
}

// NextFunc receives the document's current fields, or nil when the document does not exist.
type NextFunc func(Fields)

// ErrorFunc receives a delivery failure. The subscription delivers nothing after it.
type ErrorFunc func(error)

// Reader performs one-shot document reads.
type Reader interface {
	Read(ctx context.Context, collection, id string) (Document, error)
}

// Subscriber opens push subscriptions on a single document. Deliveries arrive in the
// order the backend emits them, zero or more times, until the subscription is detached
// or fails.
type Subscriber interface {
	Subscribe(collection, id string, onNext NextFunc, onError ErrorFunc) *Subscription
}

// Store is the full collaborator contract.
type Store interface {
	Reader
	Subscriber
}

// Subscription is the detach token returned by Subscribe.
type Subscription struct {
	alive atomic.Bool
	once  sync.Once
	stop  func()
}

// NewSubscription returns an active subscription that runs stop once on Detach.
func NewSubscription(stop func()) *Subscription {
	s := &Subscription{stop: stop}
	s.alive.Store(true)
	return s
}

// Active reports whether Detach has not been called yet.
func (s *Subscription) Active() bool {
	return s != nil && s.alive.Load()
}

// Detach stops deliveries. It is safe to call more than once and from any goroutine.
func (s *Subscription) Detach() {
	if s == nil {
		return
	}
	s.alive.Store(false)
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
	})
}

func cloneFields(f Fields) Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
