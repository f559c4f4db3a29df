package docstore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store on top of a Cloud Firestore client.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore creates a Firestore-backed document store.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

// Read fetches a document once. A missing document is not an error.
func (f *Firestore) Read(ctx context.Context, collection, id string) (Document, error) {
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Document{}, nil
		}
		return Document{}, err
	}
	if !snap.Exists() {
		return Document{}, nil
	}
	return Document{Exists: true, Fields: snap.Data()}, nil
}

// Subscribe listens to document snapshots on a background goroutine. The listener runs
// under its own context so it outlives the caller's request; Detach cancels it.
func (f *Firestore) Subscribe(collection, id string, onNext NextFunc, onError ErrorFunc) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	it := f.client.Collection(collection).Doc(id).Snapshots(ctx)
	sub := NewSubscription(func() {
		cancel()
		it.Stop()
	})

	go func() {
		for {
			snap, err := it.Next()
			if !sub.Active() {
				return
			}
			if err != nil {
				if errors.Is(err, iterator.Done) {
					err = ErrStreamClosed
				}
				onError(err)
				return
			}
			if snap == nil || !snap.Exists() {
				onNext(nil)
				continue
			}
			onNext(snap.Data())
		}
	}()

	return sub
}

// Compile-time interface check
var _ Store = (*Firestore)(nil)
