package profilesync

import (
	"context"

	"github.com/janisto/meal-planner/internal/platform/docstore"
	"github.com/janisto/meal-planner/internal/service/profile"
)

// MemoryUpdater validates writes through a profile service and mirrors accepted
// ones into an in-memory document store, so live subscriptions see them the way
// they would see a Firestore write.
type MemoryUpdater struct {
	svc  profile.Service
	docs *docstore.Memory
}

// NewMemoryUpdater creates an updater writing through svc into docs.
func NewMemoryUpdater(svc profile.Service, docs *docstore.Memory) *MemoryUpdater {
	return &MemoryUpdater{svc: svc, docs: docs}
}

// Update applies params through the service and stores the resulting document.
func (u *MemoryUpdater) Update(ctx context.Context, uid string, params profile.UpdateParams) (*profile.Profile, error) {
	p, err := u.svc.Update(ctx, uid, params)
	if err != nil {
		return nil, err
	}
	u.docs.Put(profile.UsersCollection, uid, docstore.Fields{
		fieldFirstName: p.FirstName,
		fieldLastName:  p.LastName,
		fieldEmail:     p.Email,
	})
	return p, nil
}

var _ Updater = (*MemoryUpdater)(nil)
