// Package profilesync keeps a live, consistent view of one user's profile document
// and reconciles local edits against it.
//
// A Store holds the {snapshot, loading, error} triple for a single mount. It is fed
// by a push subscription on Users/{uid} and by one-shot refreshes; faults are
// recorded in the state, never returned. A Binder re-subscribes the store whenever
// the identity changes. A Reconciler diffs a draft against the last snapshot, writes
// only what changed and then forces a refresh so the view shows server-confirmed data.
package profilesync
