package commands

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
)

// CreateWorkOrdersByOrderStatusCommandHandler opens work orders for every order
// currently in the command's status, oldest first.
type CreateWorkOrdersByOrderStatusCommandHandler struct {
	batch workOrderBatch
}

func NewCreateWorkOrdersByOrderStatusCommandHandler(
	uowFactory WorkOrderUoWFactory,
	location *time.Location,
	logger *slog.Logger,
) CreateWorkOrdersByOrderStatusCommandHandler {
	return CreateWorkOrdersByOrderStatusCommandHandler{
		batch: workOrderBatch{
			uowFactory: uowFactory,
			opener:     newWorkOrderOpener(location),
			logger:     logger.With("component", "work-orders-by-order-status"),
		},
	}
}

func (h *CreateWorkOrdersByOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd CreateWorkOrdersByOrderStatusCommand,
) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	// The candidate list is read outside any transaction; each candidate is
	// rechecked inside its own.
	ids, err := h.batch.uowFactory.Create().OrderRepository().ListIDsByStatus(ctx, cmd.Status())
	if err != nil {
		return BatchResult{}, err
	}

	return h.batch.run(ctx, ids, forOrder), nil
}

func forOrder(_ context.Context, _ WorkOrderUoW, id kernel.UUID) (workorder.Params, error) {
	return workorder.Params{OrderID: id}, nil
}
