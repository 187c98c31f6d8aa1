package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
)

// EnqueueOrderCommandHandler adds an order to a day's queue. The whole
// read-decide-write sequence runs under the day's lock, so concurrent enqueues for the
// same day cannot hand out the same position.
type EnqueueOrderCommandHandler struct {
	uowFactory JobQueueUoWFactory
	planner    services.QueuePlanner
	location   *time.Location
}

func NewEnqueueOrderCommandHandler(uowFactory JobQueueUoWFactory, location *time.Location) EnqueueOrderCommandHandler {
	if location == nil {
		location = time.UTC
	}
	return EnqueueOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewQueuePlanner(),
		location:   location,
	}
}

// Handle returns errs.ObjectNotFoundError for an unknown order and errs.ConflictError
// when the order is already queued on that day.
func (h *EnqueueOrderCommandHandler) Handle(ctx context.Context, cmd EnqueueOrderCommand) (*jobqueue.Entry, error) {
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
	if err := queue.LockDate(ctx, cmd.Day()); err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	exists, err := queue.Exists(ctx, cmd.OrderID(), cmd.Day())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("orderId", cmd.OrderID().String()+" on "+cmd.Day().String())
	}

	positions, err := queue.Positions(ctx, cmd.Day())
	if err != nil {
		return nil, err
	}
	placement := h.planner.PlanInsert(positions, cmd.Position())
	if placement.Shift != nil {
		if err = queue.Shift(ctx, cmd.Day(), *placement.Shift); err != nil {
			return nil, err
		}
	}

	eta := jobqueue.EstimateCompletion(cmd.Day(), placement.Position, workloadOf(o), h.location)
	entry, err := jobqueue.NewEntry(kernel.NewUUID(), o.ID(), cmd.Day(), placement.Position, eta, cmd.Notes())
	if err != nil {
		return nil, err
	}
	if err = queue.Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

func workloadOf(o *order.Order) jobqueue.Workload {
	return jobqueue.Workload{ItemCount: o.ItemCount(), Weight: o.TotalWeight()}
}
