package commands

import (
	"context"
	"errors"
	"log/slog"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"
)

// BatchFailure is a candidate the batch could not turn into a work order. ID is the
// job queue entry or order the candidate came from.
type BatchFailure struct {
	ID  kernel.UUID
	Err error
}

// BatchResult reports a batch run. Created work orders stay committed whatever happens
// to later candidates.
type BatchResult struct {
	Created []*workorder.WorkOrder
	Skipped []kernel.UUID
	Failed  []BatchFailure
}

// workOrderBatch opens work orders for a list of candidates, each in its own
// transaction.
type workOrderBatch struct {
	uowFactory WorkOrderUoWFactory
	opener     workOrderOpener
	logger     *slog.Logger
}

// resolveFunc turns a candidate id into work order params inside the candidate's
// transaction.
type resolveFunc func(ctx context.Context, uow WorkOrderUoW, id kernel.UUID) (workorder.Params, error)

func (b workOrderBatch) run(ctx context.Context, ids []kernel.UUID, resolve resolveFunc) BatchResult {
	var result BatchResult
	for _, id := range ids {
		if ctx.Err() != nil {
			result.Failed = append(result.Failed, BatchFailure{ID: id, Err: ctx.Err()})
			continue
		}

		wo, err := b.openOne(ctx, id, resolve)
		switch {
		case err == nil:
			result.Created = append(result.Created, wo)
		case errors.Is(err, errs.ErrConflict):
			result.Skipped = append(result.Skipped, id)
		default:
			b.logger.Warn("work order not created", "candidate", id.String(), "error", err)
			result.Failed = append(result.Failed, BatchFailure{ID: id, Err: err})
		}
	}

	b.logger.Info("work order batch finished",
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed))
	return result
}

func (b workOrderBatch) openOne(ctx context.Context, id kernel.UUID, resolve resolveFunc) (*workorder.WorkOrder, error) {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	params, err := resolve(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	wo, err := b.opener.Open(ctx, uow, params)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return wo, nil
}
