// Package commands contains the write side of the service: order intake, job queue
// maintenance and the work-order engine. Every handler follows the same shape:
// validate the command, open a unit of work, load, decide in the domain, persist,
// commit.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each group of handlers touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	JobQueueRepoFactory interface {
		JobQueueRepository() ports.JobQueueRepository
	}

	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	NumberSequenceFactory interface {
		NumberSequence() ports.NumberSequence
	}

	// OrderUoW covers order intake: the order with its items and payments plus the
	// number counters.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		NumberSequenceFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// JobQueueUoW covers queue maintenance, which reads orders for ETA estimation.
	JobQueueUoW interface {
		TxManager
		OrderRepoFactory
		JobQueueRepoFactory
	}

	JobQueueUoWFactory interface {
		Create() JobQueueUoW
	}

	// WorkOrderUoW covers the work-order engine.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   wo, err := uow.WorkOrderRepository().GetForUpdate(ctx, id)
	//   // ... decide, persist, apply events to the order
	//
	//   err = uow.Commit(ctx)
	WorkOrderUoW interface {
		TxManager
		OrderRepoFactory
		JobQueueRepoFactory
		WorkOrderRepoFactory
		NumberSequenceFactory
	}

	WorkOrderUoWFactory interface {
		Create() WorkOrderUoW
	}
)
