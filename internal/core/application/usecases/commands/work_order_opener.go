package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"
)

// workOrderOpener holds the creation rules shared by the single and the batch
// handlers. It runs inside a transaction owned by the caller.
type workOrderOpener struct {
	updater  orderStatusUpdater
	location *time.Location
}

func newWorkOrderOpener(location *time.Location) workOrderOpener {
	if location == nil {
		location = time.UTC
	}
	return workOrderOpener{updater: newOrderStatusUpdater(), location: location}
}

// Open creates the work order for p.OrderID and moves the order to PROCESSING.
//
// Errors:
//   - errs.ObjectNotFoundError for an unknown order or job queue entry
//   - errs.ConflictError when the order already has a work order
func (o workOrderOpener) Open(ctx context.Context, uow WorkOrderUoW, p workorder.Params) (*workorder.WorkOrder, error) {
	orders := uow.OrderRepository()
	parent, err := orders.Get(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}

	works := uow.WorkOrderRepository()
	exists, err := works.ExistsForOrder(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewConflictError("orderId", p.OrderID.String())
	}

	if !p.JobQueueID.IsZero() {
		if _, err = uow.JobQueueRepository().Get(ctx, p.JobQueueID); err != nil {
			return nil, err
		}
	}

	now := time.Now().In(o.location)
	p.Number, err = nextNumber(ctx, uow.NumberSequence(), kernel.WorkOrderNumberPrefix, kernel.DateOf(now))
	if err != nil {
		return nil, err
	}

	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), p, now.UTC())
	if err != nil {
		return nil, err
	}
	if err = works.Add(ctx, wo); err != nil {
		return nil, err
	}

	if err = o.updater.Apply(ctx, orders, parent, wo.PullEvents()); err != nil {
		return nil, err
	}
	return wo, nil
}
