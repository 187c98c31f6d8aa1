package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work orders and their steps.
type WorkOrderRepository interface {
	// Add persists the work order and all of its steps.
	// Returns errs.ConflictError when the order already has a work order.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Get retrieves a work order with its steps ordered by sequence.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetForUpdate is Get holding a row lock on the work order until the transaction
	// ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// ExistsForOrder reports whether orderID already has a work order.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// Update persists the work order row and the given step.
	Update(ctx context.Context, aggregate *workorder.WorkOrder, step *workorder.Step) error

	// Delete removes the steps, then the work order.
	Delete(ctx context.Context, id kernel.UUID) error
}
