package commands

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
)

// CreateWorkOrdersFromJobQueueCommandHandler opens a work order for the order of every
// listed queue entry. Orders that already have one are skipped; failures are logged
// and reported without stopping the batch.
type CreateWorkOrdersFromJobQueueCommandHandler struct {
	batch workOrderBatch
}

func NewCreateWorkOrdersFromJobQueueCommandHandler(
	uowFactory WorkOrderUoWFactory,
	location *time.Location,
	logger *slog.Logger,
) CreateWorkOrdersFromJobQueueCommandHandler {
	return CreateWorkOrdersFromJobQueueCommandHandler{
		batch: workOrderBatch{
			uowFactory: uowFactory,
			opener:     newWorkOrderOpener(location),
			logger:     logger.With("component", "work-orders-from-job-queue"),
		},
	}
}

func (h *CreateWorkOrdersFromJobQueueCommandHandler) Handle(
	ctx context.Context,
	cmd CreateWorkOrdersFromJobQueueCommand,
) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	return h.batch.run(ctx, cmd.JobQueueIDs(), fromJobQueueEntry), nil
}

func fromJobQueueEntry(ctx context.Context, uow WorkOrderUoW, id kernel.UUID) (workorder.Params, error) {
	entry, err := uow.JobQueueRepository().Get(ctx, id)
	if err != nil {
		return workorder.Params{}, err
	}
	return workorder.Params{
		OrderID:    entry.OrderID(),
		JobQueueID: entry.ID(),
	}, nil
}
