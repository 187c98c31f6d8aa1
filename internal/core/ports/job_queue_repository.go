package ports

import (
	"context"

	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
)

// JobQueueRepository defines the persistence contract for daily job queue entries.
//
// Every read-modify-write of a day's positions must run inside a transaction that first
// called LockDate for that day.
type JobQueueRepository interface {
	// LockDate serializes writers of day until the surrounding transaction ends.
	LockDate(ctx context.Context, day kernel.Date) error

	// Get retrieves an entry by id.
	// Returns errs.ObjectNotFoundError when the entry does not exist.
	Get(ctx context.Context, id kernel.UUID) (*jobqueue.Entry, error)

	// Exists reports whether orderID is already queued on day.
	Exists(ctx context.Context, orderID kernel.UUID, day kernel.Date) (bool, error)

	// Positions lists the occupied positions of day in ascending order.
	Positions(ctx context.Context, day kernel.Date) ([]int, error)

	// Shift applies a planned neighbour shift to the entries of day.
	Shift(ctx context.Context, day kernel.Date, shift services.Shift) error

	Add(ctx context.Context, entry *jobqueue.Entry) error

	Update(ctx context.Context, entry *jobqueue.Entry) error

	// Delete removes the entry without renumbering the others.
	Delete(ctx context.Context, id kernel.UUID) error
}
