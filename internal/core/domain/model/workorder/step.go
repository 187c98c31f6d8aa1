package workorder

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrStepIsNotConstructed = errors.New("Step must be created via newStep or RestoreStep")

// Step is one handling stage of a work order. Steps are owned by the WorkOrder and
// change only through WorkOrder.UpdateStep.
type Step struct {
	id              kernel.UUID
	workOrderID     kernel.UUID
	stepType        StepType
	sequence        int
	status          StepStatus
	assignedTo      string
	startTime       *time.Time
	endTime         *time.Time
	durationMinutes *int
	notes           string

	guard guard.ConstructorGuard
}

func newStep(id, workOrderID kernel.UUID, stepType StepType, sequence int) *Step {
	return &Step{
		id:          id,
		workOrderID: workOrderID,
		stepType:    stepType,
		sequence:    sequence,
		status:      StepPending,
		guard:       guard.NewConstructorGuard(),
	}
}

// StepState is the persisted form of a step.
type StepState struct {
	ID              kernel.UUID
	WorkOrderID     kernel.UUID
	Type            StepType
	Sequence        int
	Status          StepStatus
	AssignedTo      string
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Notes           string
}

// RestoreStep rebuilds a step loaded from storage.
func RestoreStep(s StepState) (*Step, error) {
	var seqErr error
	if s.Sequence < 1 {
		seqErr = errs.NewValueIsInvalidErrorWithCause("sequenceNumber", fmt.Errorf("%d is not greater than 0", s.Sequence))
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.WorkOrderID.Validate(),
		s.Type.Validate(),
		s.Status.Validate(),
		seqErr,
	); err != nil {
		return nil, err
	}
	return &Step{
		id:              s.ID,
		workOrderID:     s.WorkOrderID,
		stepType:        s.Type,
		sequence:        s.Sequence,
		status:          s.Status,
		assignedTo:      s.AssignedTo,
		startTime:       s.StartTime,
		endTime:         s.EndTime,
		durationMinutes: s.DurationMinutes,
		notes:           s.Notes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (s *Step) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}

func (s *Step) ID() kernel.UUID          { return s.id }
func (s *Step) WorkOrderID() kernel.UUID { return s.workOrderID }
func (s *Step) Type() StepType           { return s.stepType }
func (s *Step) Sequence() int            { return s.sequence }
func (s *Step) Status() StepStatus       { return s.status }
func (s *Step) AssignedTo() string       { return s.assignedTo }
func (s *Step) StartTime() *time.Time    { return s.startTime }
func (s *Step) EndTime() *time.Time      { return s.endTime }
func (s *Step) DurationMinutes() *int    { return s.durationMinutes }
func (s *Step) Notes() string            { return s.notes }

// changeStatus applies a validated transition and stamps the times it implies.
func (s *Step) changeStatus(next StepStatus, now time.Time) error {
	if err := s.status.ValidateTransition(next); err != nil {
		return err
	}
	if s.status == next {
		return nil
	}

	switch next {
	case StepInProgress:
		if s.startTime == nil {
			s.startTime = &now
		}
	case StepCompleted:
		if s.startTime == nil {
			s.startTime = &now
		}
		s.endTime = &now
		minutes := int(now.Sub(*s.startTime).Minutes())
		s.durationMinutes = &minutes
	case StepSkipped:
		s.endTime = &now
	}
	s.status = next
	return nil
}
