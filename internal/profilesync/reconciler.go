package profilesync

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/janisto/meal-planner/internal/identity"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	"github.com/janisto/meal-planner/internal/service/profile"
)

// Outcome is the result kind of a save.
type Outcome int

const (
	// Unchanged means the draft matched the snapshot; nothing was written.
	Unchanged Outcome = iota
	// NotAuthenticated means there was no user to write for.
	NotAuthenticated
	// Saved means the write succeeded and the store was refreshed.
	Saved
	// WriteFailed means the update collaborator rejected or failed the write.
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case NotAuthenticated:
		return "not_authenticated"
	case Saved:
		return "saved"
	case WriteFailed:
		return "write_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// SaveResult carries the outcome and, for WriteFailed, a *WriteFault.
type SaveResult struct {
	Outcome Outcome
	Err     error
}

// Draft is the edit form's working copy.
type Draft struct {
	FirstName string
	LastName  string
	Email     string
}

// DraftFrom seeds a draft from a snapshot.
func DraftFrom(s Snapshot) Draft {
	return Draft(s)
}

// Updater is the profile write collaborator. It validates every provided field and
// fails the whole write if one is invalid.
type Updater interface {
	Update(ctx context.Context, userID string, params profile.UpdateParams) (*profile.Profile, error)
}

// Refresher re-reads the authoritative profile.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Reconciler decides whether a draft needs writing and performs the write.
type Reconciler struct {
	updater Updater
	store   Refresher
}

// NewReconciler creates a reconciler that writes through updater and refreshes store.
func NewReconciler(updater Updater, store Refresher) *Reconciler {
	return &Reconciler{updater: updater, store: store}
}

// Save compares draft with snapshot and writes the difference for id.
//
// Fields are compared after trimming; email is compared without regard to case,
// so a case-only email edit is Unchanged. Only fields that differ and are
// non-empty after trimming are sent. A successful write is followed by exactly
// one Refresh before Save returns Saved.
func (r *Reconciler) Save(ctx context.Context, draft Draft, snapshot Snapshot, id identity.Identity) SaveResult {
	d, s := trimmed(draft), trimmed(Draft(snapshot))
	if d.FirstName == s.FirstName && d.LastName == s.LastName && strings.EqualFold(d.Email, s.Email) {
		return SaveResult{Outcome: Unchanged}
	}
	if !id.Authenticated() {
		return SaveResult{Outcome: NotAuthenticated}
	}

	if _, err := r.updater.Update(ctx, id.UID, changes(d, s)); err != nil {
		applog.LogWarn(ctx, "profile save failed", zap.String("uid", id.UID), zap.Error(err))
		return SaveResult{Outcome: WriteFailed, Err: &WriteFault{UID: id.UID, Err: err}}
	}

	r.store.Refresh(ctx)
	return SaveResult{Outcome: Saved}
}

func trimmed(d Draft) Draft {
	return Draft{
		FirstName: strings.TrimSpace(d.FirstName),
		LastName:  strings.TrimSpace(d.LastName),
		Email:     strings.TrimSpace(d.Email),
	}
}

// changes builds the sparse update from trimmed draft d against trimmed snapshot s.
func changes(d, s Draft) profile.UpdateParams {
	var p profile.UpdateParams
	if d.FirstName != "" && d.FirstName != s.FirstName {
		p.FirstName = &d.FirstName
	}
	if d.LastName != "" && d.LastName != s.LastName {
		p.LastName = &d.LastName
	}
	if d.Email != "" && !strings.EqualFold(d.Email, s.Email) {
		p.Email = &d.Email
	}
	return p
}
