package jobqueue

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when an Entry was not built by NewEntry or
// RestoreEntry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry schedules one order for processing on one day.
type Entry struct {
	id                  kernel.UUID
	orderID             kernel.UUID
	scheduledDate       kernel.Date
	position            int
	estimatedCompletion *time.Time
	actualCompletion    *time.Time
	notes               string
	createdAt           time.Time
	updatedAt           time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates an entry at position with the given ETA.
func NewEntry(
	id, orderID kernel.UUID,
	scheduledDate kernel.Date,
	position int,
	eta time.Time,
	notes string,
) (*Entry, error) {
	now := time.Now().UTC()
	e := &Entry{
		notes:               notes,
		estimatedCompletion: &eta,
		createdAt:           now,
		updatedAt:           now,
		guard:               guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		e.setIDs(id, orderID),
		e.setDate(scheduledDate),
		e.setPosition(position),
	); err != nil {
		return nil, err
	}
	return e, nil
}

// EntryState is the persisted form of an entry.
type EntryState struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	ScheduledDate       kernel.Date
	Position            int
	EstimatedCompletion *time.Time
	ActualCompletion    *time.Time
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func RestoreEntry(s EntryState) (*Entry, error) {
	e := &Entry{
		estimatedCompletion: s.EstimatedCompletion,
		actualCompletion:    s.ActualCompletion,
		notes:               s.Notes,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		guard:               guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		e.setIDs(s.ID, s.OrderID),
		e.setDate(s.ScheduledDate),
		e.setPosition(s.Position),
	); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID                 { return e.id }
func (e *Entry) OrderID() kernel.UUID            { return e.orderID }
func (e *Entry) ScheduledDate() kernel.Date      { return e.scheduledDate }
func (e *Entry) Position() int                   { return e.position }
func (e *Entry) EstimatedCompletion() *time.Time { return e.estimatedCompletion }
func (e *Entry) ActualCompletion() *time.Time    { return e.actualCompletion }
func (e *Entry) Notes() string                   { return e.notes }
func (e *Entry) CreatedAt() time.Time            { return e.createdAt }
func (e *Entry) UpdatedAt() time.Time            { return e.updatedAt }

// MoveTo places the entry at position. Neighbours are shifted by the caller.
func (e *Entry) MoveTo(position int) error {
	if err := e.setPosition(position); err != nil {
		return err
	}
	e.touch()
	return nil
}

func (e *Entry) SetEstimatedCompletion(eta time.Time) {
	e.estimatedCompletion = &eta
	e.touch()
}

func (e *Entry) SetActualCompletion(at time.Time) {
	e.actualCompletion = &at
	e.touch()
}

func (e *Entry) SetNotes(notes string) {
	e.notes = notes
	e.touch()
}

func (e *Entry) touch() {
	e.updatedAt = time.Now().UTC()
}

func (e *Entry) setIDs(id, orderID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	e.id, e.orderID = id, orderID
	return nil
}

func (e *Entry) setDate(d kernel.Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	e.scheduledDate = d
	return nil
}

func (e *Entry) setPosition(position int) error {
	if position < 1 {
		return errs.NewValueIsOutOfRangeErrorWithCause("queuePosition", position, 1, "max+1",
			fmt.Errorf("%d is not greater than 0", position))
	}
	e.position = position
	return nil
}
