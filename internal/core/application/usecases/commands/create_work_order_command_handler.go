package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/workorder"
)

// CreateWorkOrderCommandHandler opens a work order with its six steps and moves the
// order to PROCESSING, atomically.
type CreateWorkOrderCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	opener     workOrderOpener
}

func NewCreateWorkOrderCommandHandler(uowFactory WorkOrderUoWFactory, location *time.Location) CreateWorkOrderCommandHandler {
	return CreateWorkOrderCommandHandler{
		uowFactory: uowFactory,
		opener:     newWorkOrderOpener(location),
	}
}

func (h *CreateWorkOrderCommandHandler) Handle(ctx context.Context, cmd CreateWorkOrderCommand) (*workorder.WorkOrder, error) {
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

	wo, err := h.opener.Open(ctx, uow, cmd.params)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return wo, nil
}
