// Package sla classifies matters against a configured resolution-time
// threshold.
package sla

import (
	"fmt"
	"time"

	"matterflow/workflow"
)

// Status is the three-valued SLA classification of a matter.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusMet        Status = "met"
	StatusBreached   Status = "breached"
)

// Evaluator classifies matters against a resolution-time threshold.
type Evaluator struct {
	threshold time.Duration
}

// NewEvaluator builds an evaluator with the given threshold. The threshold
// must be positive.
func NewEvaluator(threshold time.Duration) (*Evaluator, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("sla: threshold must be positive, got %s", threshold)
	}
	return &Evaluator{threshold: threshold}, nil
}

// Evaluate classifies a matter's cycle time. A nil cycle time (no workflow
// history yet) is in progress by definition.
func (e *Evaluator) Evaluate(ct *workflow.CycleTime) Status {
	if ct == nil {
		return StatusInProgress
	}
	switch {
	case ct.InProgress && ct.Elapsed <= e.threshold:
		return StatusInProgress
	case ct.Elapsed <= e.threshold:
		return StatusMet
	default:
		return StatusBreached
	}
}
