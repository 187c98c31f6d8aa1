package workorder

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the lifecycle state of a work order.
type Status string

const (
	Pending    Status = "PENDING"
	InProgress Status = "IN_PROGRESS"
	Completed  Status = "COMPLETED"
	Cancelled  Status = "CANCELLED"
)

func (s Status) Validate() error {
	switch s {
	case Pending, InProgress, Completed, Cancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a work order status", string(s)))
	}
}

// IsFinal reports whether the work order is closed for step changes.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// StepStatus is the state of a single step.
//
//	PENDING ──> IN_PROGRESS ──> COMPLETED
//	   │             │
//	   │             └────────> SKIPPED
//	   └──────> COMPLETED | SKIPPED
type StepStatus string

const (
	StepPending    StepStatus = "PENDING"
	StepInProgress StepStatus = "IN_PROGRESS"
	StepCompleted  StepStatus = "COMPLETED"
	StepSkipped    StepStatus = "SKIPPED"
)

func (s StepStatus) Validate() error {
	switch s {
	case StepPending, StepInProgress, StepCompleted, StepSkipped:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("stepStatus", fmt.Errorf("%q is not a step status", string(s)))
	}
}

// IsTerminal reports whether the step is finished one way or another.
func (s StepStatus) IsTerminal() bool {
	return s == StepCompleted || s == StepSkipped
}

// ValidateTransition checks s -> next. Re-applying the current status is not a
// transition and is accepted.
func (s StepStatus) ValidateTransition(next StepStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if s == next {
		return nil
	}
	allowed := false
	switch s {
	case StepPending:
		allowed = next != StepPending
	case StepInProgress:
		allowed = next.IsTerminal()
	}
	if !allowed {
		return errs.NewValueIsInvalidErrorWithCause(
			"stepStatus",
			fmt.Errorf("cannot change step from %s to %s", s, next),
		)
	}
	return nil
}

// StepType names a physical handling stage.
type StepType string

const (
	Sorting      StepType = "SORTING"
	Washing      StepType = "WASHING"
	Drying       StepType = "DRYING"
	Folding      StepType = "FOLDING"
	Packaging    StepType = "PACKAGING"
	QualityCheck StepType = "QUALITY_CHECK"
)

// StepSequence is the fixed processing order; index i holds sequence number i+1.
func StepSequence() []StepType {
	return []StepType{Sorting, Washing, Drying, Folding, Packaging, QualityCheck}
}

func (t StepType) Validate() error {
	for _, known := range StepSequence() {
		if t == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("stepType", fmt.Errorf("%q is not a step type", string(t)))
}
