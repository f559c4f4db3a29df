package profilesync

import (
	"fmt"

	"github.com/janisto/meal-planner/internal/platform/docstore"
)

// Document field names on Users/{uid}.
const (
	fieldFirstName = "firstName"
	fieldLastName  = "lastName"
	fieldEmail     = "email"
)

// Snapshot is the authoritative profile at a point in time. Empty strings mean unknown.
type Snapshot struct {
	FirstName string
	LastName  string
	Email     string
}

// SnapshotFromFields builds a snapshot from raw document fields. A nil mapping, a
// missing field or a non-string value all yield "".
func SnapshotFromFields(f docstore.Fields) Snapshot {
	return Snapshot{
		FirstName: stringField(f, fieldFirstName),
		LastName:  stringField(f, fieldLastName),
		Email:     stringField(f, fieldEmail),
	}
}

func stringField(f docstore.Fields, name string) string {
	if f == nil {
		return ""
	}
	s, _ := f[name].(string)
	return s
}

// Phase is the store's lifecycle position.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is what consumers render. Loading is true until the current operation has
// produced its first result. Err is set only when the latest result was a failure;
// Snapshot always holds the last good data.
type State struct {
	Snapshot Snapshot
	Loading  bool
	Err      error
	Phase    Phase
}

func initialState() State {
	return State{Loading: true, Phase: PhaseUninitialized}
}

// SubscriptionFault is a delivery failure on the live channel.
type SubscriptionFault struct {
	UID string
	Err error
}

func (f *SubscriptionFault) Error() string { return f.Err.Error() }
func (f *SubscriptionFault) Unwrap() error { return f.Err }

// ReadFault is a failed one-shot refresh.
type ReadFault struct {
	UID string
	Err error
}

func (f *ReadFault) Error() string { return f.Err.Error() }
func (f *ReadFault) Unwrap() error { return f.Err }

// WriteFault is a rejected or failed profile update, validation included.
type WriteFault struct {
	UID string
	Err error
}

func (f *WriteFault) Error() string { return f.Err.Error() }
func (f *WriteFault) Unwrap() error { return f.Err }
