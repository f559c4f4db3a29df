package profile

import (
	"github.com/janisto/meal-planner/internal/platform/timeutil"
)

// Profile represents a user profile response.
type Profile struct {
	ID        string        `json:"id"        doc:"Unique identifier (uid)" example:"user-123"`
	FirstName string        `json:"firstName" doc:"First name"              example:"John"`
	LastName  string        `json:"lastName"  doc:"Last name"               example:"Doe"`
	Email     string        `json:"email"     doc:"Email address"           example:"john@example.com"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp"      example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt" doc:"Last update timestamp"   example:"2024-01-15T10:30:00.000Z"`
}

// StateEvent is one frame of the live profile stream. Error is set while the latest
// delivery or refresh failed; the snapshot fields then hold the last good data.
type StateEvent struct {
	FirstName string `json:"firstName"       doc:"First name, empty when unknown"`
	LastName  string `json:"lastName"        doc:"Last name, empty when unknown"`
	Email     string `json:"email"           doc:"Email address, empty when unknown"`
	Loading   bool   `json:"loading"         doc:"True until the current operation produced a result"`
	Phase     string `json:"phase"           doc:"Store lifecycle phase" enum:"uninitialized,loading,ready,failed"`
	Error     string `json:"error,omitempty" doc:"Latest failure, if any"`
}
