package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/workorder"
)

// UpdateWorkOrderStepCommandHandler advances a step. The work order row stays locked
// from the read until commit, so two steps finishing at the same time cannot both
// miss, or both claim, the completion of the work order.
type UpdateWorkOrderStepCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	updater    orderStatusUpdater
	now        func() time.Time
}

func NewUpdateWorkOrderStepCommandHandler(uowFactory WorkOrderUoWFactory) UpdateWorkOrderStepCommandHandler {
	return UpdateWorkOrderStepCommandHandler{
		uowFactory: uowFactory,
		updater:    newOrderStatusUpdater(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the work order after the change. When the step completes the work
// order, the order is marked READY in the same transaction.
func (h *UpdateWorkOrderStepCommandHandler) Handle(ctx context.Context, cmd UpdateWorkOrderStepCommand) (*workorder.WorkOrder, error) {
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

	works := uow.WorkOrderRepository()
	wo, err := works.GetForUpdate(ctx, cmd.WorkOrderID())
	if err != nil {
		return nil, err
	}

	step, err := wo.UpdateStep(cmd.StepID(), cmd.Patch(), h.now())
	if err != nil {
		return nil, err
	}
	if err = works.Update(ctx, wo, step); err != nil {
		return nil, err
	}

	if err = h.updater.Apply(ctx, uow.OrderRepository(), nil, wo.PullEvents()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return wo, nil
}
