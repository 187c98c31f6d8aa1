package commands

import (
	"context"
)

// RemoveWorkOrderCommandHandler deletes a work order and its steps in one
// transaction. The order's status is left as it is.
type RemoveWorkOrderCommandHandler struct {
	uowFactory WorkOrderUoWFactory
}

func NewRemoveWorkOrderCommandHandler(uowFactory WorkOrderUoWFactory) RemoveWorkOrderCommandHandler {
	return RemoveWorkOrderCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveWorkOrderCommandHandler) Handle(ctx context.Context, cmd RemoveWorkOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.WorkOrderRepository().Delete(ctx, cmd.WorkOrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
