package workflow

import "time"

// Stage group labels. These three buckets are a closed vocabulary shared
// with the board's status definitions; a status added upstream under an
// unknown group falls through to the plain formatting branch.
const (
	StageToDo       = "To Do"
	StageInProgress = "In Progress"
	StageDone       = "Done"
)

// Transition records one workflow-stage change for a matter. Rows are
// append-only: they are written when a matter's status field changes and are
// never mutated or deleted, including moves backward (Done → To Do).
type Transition struct {
	ID       string
	MatterID string
	// StatusFrom is nil for the very first transition of a matter.
	StatusFrom *string
	StatusTo   string
	// Stage is the stage-group label reached by this transition.
	Stage     string
	ChangedAt time.Time
}

// CycleTime is derived from a matter's transition history on every read; it
// is never persisted.
type CycleTime struct {
	StartedAt time.Time
	// CompletedAt is set only when the latest transition landed in Done.
	CompletedAt *time.Time
	// Elapsed spans the first to the last known transition.
	Elapsed    time.Duration
	InProgress bool
	Formatted  string
}
