package profilesync

import (
	"testing"

	"github.com/janisto/meal-planner/internal/identity"
	"github.com/janisto/meal-planner/internal/platform/docstore"
)

func TestBindSubscribesCurrentIdentity(t *testing.T) {
	mem := docstore.NewMemory()
	mem.Put("Users", "u1", johnDoe())
	store := newTestStore(mem)

	b := Bind(store, identity.NewSource(identity.Identity{UID: "u1"}))
	defer b.Close()

	if mem.Watchers("Users", "u1") != 1 {
		t.Fatalf("expected one watcher on u1, got %d", mem.Watchers("Users", "u1"))
	}
	if store.State().Snapshot.FirstName != "John" {
		t.Fatalf("unexpected state %+v", store.State())
	}
}

func TestBindWithoutIdentityOpensNothing(t *testing.T) {
	mem := docstore.NewMemory()
	store := newTestStore(mem)

	b := Bind(store, identity.NewSource(identity.Identity{}))
	defer b.Close()

	if st := store.State(); !st.Loading || st.Phase != PhaseUninitialized {
		t.Fatalf("expected perpetual loading, got %+v", st)
	}
}

func TestIdentityChangeTearsDownBeforeResubscribing(t *testing.T) {
	mem := docstore.NewMemory()
	mem.Put("Users", "u1", johnDoe())
	mem.Put("Users", "u2", docstore.Fields{"firstName": "Ann", "lastName": "Lee", "email": "ann@x.com"})
	store := newTestStore(mem)
	source := identity.NewSource(identity.Identity{UID: "u1"})

	b := Bind(store, source)
	defer b.Close()

	source.Set(identity.Identity{UID: "u2"})

	if mem.Watchers("Users", "u1") != 0 {
		t.Fatal("expected u1 subscription to be detached")
	}
	if mem.Watchers("Users", "u2") != 1 {
		t.Fatal("expected a single u2 subscription")
	}

	mem.Put("Users", "u1", docstore.Fields{"firstName": "Ghost"})
	if got := store.State().Snapshot.FirstName; got != "Ann" {
		t.Fatalf("expected u2 data, got %q", got)
	}
}

func TestBinderCloseDetaches(t *testing.T) {
	mem := docstore.NewMemory()
	store := newTestStore(mem)
	source := identity.NewSource(identity.Identity{UID: "u1"})

	b := Bind(store, source)
	b.Close()
	b.Close()

	if mem.Watchers("Users", "u1") != 0 {
		t.Fatal("expected subscription to be detached on close")
	}
	source.Set(identity.Identity{UID: "u2"})
	if mem.Watchers("Users", "u2") != 0 {
		t.Fatal("expected closed binder to ignore identity changes")
	}
}
