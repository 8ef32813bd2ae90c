package workflow

import (
	"errors"
	"fmt"
)

// ErrNoHistory signals a matter with no recorded transitions. Callers can
// then distinguish "never transitioned" from "just created, sitting in To
// Do with zero elapsed time".
var ErrNoHistory = errors.New("workflow: no transition history")

// Calculate derives a CycleTime from a matter's transition history. The
// input must already be sorted ascending by ChangedAt; the repository
// guarantees that ordering and it is not re-verified here.
//
// Progress is judged from the last record alone: a matter that once reached
// Done but moved back is in progress again.
func Calculate(transitions []Transition) (CycleTime, error) {
	if len(transitions) == 0 {
		return CycleTime{}, ErrNoHistory
	}

	first := transitions[0]
	last := transitions[len(transitions)-1]

	ct := CycleTime{
		StartedAt:  first.ChangedAt,
		Elapsed:    last.ChangedAt.Sub(first.ChangedAt),
		InProgress: last.Stage != StageDone,
	}
	if !ct.InProgress {
		completed := last.ChangedAt
		ct.CompletedAt = &completed
	}
	ct.Formatted = FormatDuration(ct.Elapsed, last.Stage)

	return ct, nil
}

// CalculateFor wraps Calculate with the matter id for error reporting.
func CalculateFor(matterID string, transitions []Transition) (CycleTime, error) {
	ct, err := Calculate(transitions)
	if err != nil {
		return CycleTime{}, fmt.Errorf("workflow: matter %s: %w", matterID, err)
	}
	return ct, nil
}
