package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// UpdateJobQueueEntryCommandHandler patches a queue entry. Every patch runs under the
// day's lock so it never writes back a position another move has changed. A position
// change moves the entry with list semantics and re-estimates its completion time
// unless the patch carries one.
type UpdateJobQueueEntryCommandHandler struct {
	uowFactory JobQueueUoWFactory
	planner    services.QueuePlanner
	location   *time.Location
}

func NewUpdateJobQueueEntryCommandHandler(uowFactory JobQueueUoWFactory, location *time.Location) UpdateJobQueueEntryCommandHandler {
	if location == nil {
		location = time.UTC
	}
	return UpdateJobQueueEntryCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewQueuePlanner(),
		location:   location,
	}
}

func (h *UpdateJobQueueEntryCommandHandler) Handle(ctx context.Context, cmd UpdateJobQueueEntryCommand) (*jobqueue.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	queue := uow.JobQueueRepository()
	entry, err := h.lockedEntry(ctx, queue, cmd)
	if err != nil {
		return nil, err
	}

	patch := cmd.Patch()
	if patch.Position != nil && *patch.Position != entry.Position() {
		if entry, err = h.move(ctx, uow, entry, *patch.Position, patch.EstimatedCompletion == nil); err != nil {
			return nil, err
		}
	}
	if patch.EstimatedCompletion != nil {
		entry.SetEstimatedCompletion(*patch.EstimatedCompletion)
	}
	if patch.ActualCompletion != nil {
		entry.SetActualCompletion(*patch.ActualCompletion)
	}
	if patch.Notes != nil {
		entry.SetNotes(*patch.Notes)
	}

	if err = queue.Update(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// lockedEntry finds the entry's day, takes the day's lock and re-reads the entry under it.
// The scheduled date never changes, so the first read is only used for the lock key.
func (h *UpdateJobQueueEntryCommandHandler) lockedEntry(
	ctx context.Context,
	queue ports.JobQueueRepository,
	cmd UpdateJobQueueEntryCommand,
) (*jobqueue.Entry, error) {
	entry, err := queue.Get(ctx, cmd.EntryID())
	if err != nil {
		return nil, err
	}
	if err = queue.LockDate(ctx, entry.ScheduledDate()); err != nil {
		return nil, err
	}
	return queue.Get(ctx, cmd.EntryID())
}

// move shifts the entry's neighbours and places it. The caller holds the day's lock.
func (h *UpdateJobQueueEntryCommandHandler) move(
	ctx context.Context,
	uow JobQueueUoW,
	entry *jobqueue.Entry,
	requested int,
	estimate bool,
) (*jobqueue.Entry, error) {
	queue := uow.JobQueueRepository()
	day := entry.ScheduledDate()

	positions, err := queue.Positions(ctx, day)
	if err != nil {
		return nil, err
	}
	placement := h.planner.PlanMove(positions, entry.Position(), requested)
	if placement.Position == entry.Position() {
		return entry, nil
	}
	if placement.Shift != nil {
		if err = queue.Shift(ctx, day, *placement.Shift); err != nil {
			return nil, err
		}
	}
	if err = entry.MoveTo(placement.Position); err != nil {
		return nil, err
	}

	if estimate {
		o, getErr := uow.OrderRepository().Get(ctx, entry.OrderID())
		if getErr != nil {
			return nil, getErr
		}
		entry.SetEstimatedCompletion(jobqueue.EstimateCompletion(day, entry.Position(), workloadOf(o), h.location))
	}
	return entry, nil
}
