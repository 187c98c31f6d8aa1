package workorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

const (
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = 3
)

// ErrWorkOrderIsNotConstructed is returned when a WorkOrder was not created through
// NewWorkOrder or RestoreWorkOrder.
var ErrWorkOrderIsNotConstructed = errors.New("WorkOrder must be created via NewWorkOrder constructor")

// WorkOrder is the aggregate root sequencing the physical processing of one order.
//
// Invariants:
//   - it always owns exactly the steps it was created with, ordered by sequence
//   - currentStep names an existing step type
//   - status is COMPLETED exactly when every step is COMPLETED or SKIPPED
//   - startTime is set once, when work first starts
type WorkOrder struct {
	id          kernel.UUID
	orderID     kernel.UUID
	jobQueueID  kernel.UUID
	number      string
	status      Status
	assignedTo  string
	priority    int
	startTime   *time.Time
	endTime     *time.Time
	currentStep StepType
	notes       string
	createdAt   time.Time
	updatedAt   time.Time

	steps  []*Step
	events []Event

	isConstructed bool
}

// Params are the caller-controlled fields of a new work order. A zero JobQueueID means
// the work order was not created from a queue entry; a zero Priority means
// DefaultPriority.
type Params struct {
	OrderID    kernel.UUID
	JobQueueID kernel.UUID
	Number     string
	Priority   int
	AssignedTo string
	Notes      string
}

// NewWorkOrder opens a PENDING work order positioned at SORTING with all six steps
// PENDING, and records a WorkOrderCreated event.
//
// Example:
//
//	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), workorder.Params{
//	    OrderID: orderID,
//	    Number:  "WO-20261016-00001",
//	}, time.Now())
func NewWorkOrder(id kernel.UUID, p Params, now time.Time) (*WorkOrder, error) {
	if p.Priority == 0 {
		p.Priority = DefaultPriority
	}
	wo := &WorkOrder{
		jobQueueID:    p.JobQueueID,
		status:        Pending,
		assignedTo:    p.AssignedTo,
		currentStep:   Sorting,
		notes:         p.Notes,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if err := errors.Join(
		wo.setID(id),
		wo.setOrderID(p.OrderID),
		wo.setNumber(p.Number),
		wo.setPriority(p.Priority),
	); err != nil {
		return nil, err
	}

	for i, stepType := range StepSequence() {
		wo.steps = append(wo.steps, newStep(kernel.NewUUID(), id, stepType, i+1))
	}
	wo.record(NewWorkOrderCreated(wo.id, wo.orderID, now))

	return wo, nil
}

// State is the persisted form of a work order.
type State struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	JobQueueID  kernel.UUID
	Number      string
	Status      Status
	AssignedTo  string
	Priority    int
	StartTime   *time.Time
	EndTime     *time.Time
	CurrentStep StepType
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Steps       []*Step
}

// RestoreWorkOrder rebuilds a work order loaded from storage. Steps must be ordered by
// sequence.
func RestoreWorkOrder(s State) (*WorkOrder, error) {
	wo := &WorkOrder{
		jobQueueID:    s.JobQueueID,
		assignedTo:    s.AssignedTo,
		startTime:     s.StartTime,
		endTime:       s.EndTime,
		notes:         s.Notes,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		steps:         s.Steps,
		isConstructed: true,
	}
	if err := errors.Join(
		wo.setID(s.ID),
		wo.setOrderID(s.OrderID),
		wo.setNumber(s.Number),
		wo.setPriority(s.Priority),
		s.Status.Validate(),
		s.CurrentStep.Validate(),
	); err != nil {
		return nil, err
	}
	wo.status = s.Status
	wo.currentStep = s.CurrentStep
	return wo, nil
}

func (w *WorkOrder) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkOrderIsNotConstructed
	}
	return nil
}

func (w *WorkOrder) ID() kernel.UUID         { return w.id }
func (w *WorkOrder) OrderID() kernel.UUID    { return w.orderID }
func (w *WorkOrder) JobQueueID() kernel.UUID { return w.jobQueueID }
func (w *WorkOrder) Number() string          { return w.number }
func (w *WorkOrder) Status() Status          { return w.status }
func (w *WorkOrder) AssignedTo() string      { return w.assignedTo }
func (w *WorkOrder) Priority() int           { return w.priority }
func (w *WorkOrder) StartTime() *time.Time   { return w.startTime }
func (w *WorkOrder) EndTime() *time.Time     { return w.endTime }
func (w *WorkOrder) CurrentStep() StepType   { return w.currentStep }
func (w *WorkOrder) Notes() string           { return w.notes }
func (w *WorkOrder) CreatedAt() time.Time    { return w.createdAt }
func (w *WorkOrder) UpdatedAt() time.Time    { return w.updatedAt }

// Steps returns the steps ordered by sequence.
func (w *WorkOrder) Steps() []*Step {
	return append([]*Step(nil), w.steps...)
}

// Step finds a step by id.
func (w *WorkOrder) Step(id kernel.UUID) (*Step, error) {
	for _, s := range w.steps {
		if s.id.IsEqual(id) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stepId", id)
}

// StepPatch lists the step fields to change; nil fields are left alone.
type StepPatch struct {
	Status     *StepStatus
	AssignedTo *string
	Notes      *string
}

// UpdateStep applies patch to the step and propagates the consequences to the work
// order:
//   - a step entering IN_PROGRESS starts the work order
//   - a step becoming COMPLETED or SKIPPED moves currentStep to the next sequence
//   - once every step is COMPLETED or SKIPPED the work order completes and a
//     WorkOrderCompleted event is recorded
//
// It returns the updated step.
func (w *WorkOrder) UpdateStep(stepID kernel.UUID, patch StepPatch, now time.Time) (*Step, error) {
	step, err := w.Step(stepID)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != step.status {
		if w.status.IsFinal() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"status",
				fmt.Errorf("work order %s is %s", w.number, w.status),
			)
		}
		if err = step.changeStatus(*patch.Status, now); err != nil {
			return nil, err
		}
		w.afterStepChange(step, now)
	}
	if patch.AssignedTo != nil {
		step.assignedTo = *patch.AssignedTo
	}
	if patch.Notes != nil {
		step.notes = *patch.Notes
	}
	w.updatedAt = now

	return step, nil
}

// PullEvents returns the recorded events and clears them.
func (w *WorkOrder) PullEvents() []Event {
	events := w.events
	w.events = nil
	return events
}

func (w *WorkOrder) afterStepChange(step *Step, now time.Time) {
	w.start(now)
	if !step.status.IsTerminal() {
		return
	}

	if next := w.stepAt(step.sequence + 1); next != nil {
		w.currentStep = next.stepType
	}
	if w.allStepsTerminal() {
		w.status = Completed
		w.endTime = &now
		w.record(NewWorkOrderCompleted(w.id, w.orderID, now))
	}
}

func (w *WorkOrder) start(now time.Time) {
	if w.status == Pending {
		w.status = InProgress
	}
	if w.startTime == nil {
		w.startTime = &now
	}
}

func (w *WorkOrder) stepAt(sequence int) *Step {
	for _, s := range w.steps {
		if s.sequence == sequence {
			return s
		}
	}
	return nil
}

func (w *WorkOrder) allStepsTerminal() bool {
	for _, s := range w.steps {
		if !s.status.IsTerminal() {
			return false
		}
	}
	return len(w.steps) > 0
}

func (w *WorkOrder) record(e Event) {
	w.events = append(w.events, e)
}

func (w *WorkOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *WorkOrder) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	w.orderID = orderID
	return nil
}

func (w *WorkOrder) setNumber(number string) error {
	if !strings.HasPrefix(number, string(kernel.WorkOrderNumberPrefix)+"-") {
		return errs.NewValueIsInvalidErrorWithCause(
			"workOrderNumber",
			fmt.Errorf("%q does not start with %s-", number, kernel.WorkOrderNumberPrefix),
		)
	}
	w.number = number
	return nil
}

func (w *WorkOrder) setPriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority, MinPriority, MaxPriority)
	}
	w.priority = priority
	return nil
}
