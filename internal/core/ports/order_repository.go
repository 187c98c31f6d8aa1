// Package ports defines the persistence and lookup contracts the application layer
// depends on. Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together
// with their items and payments.
type OrderRepository interface {
	// Add persists a new order row. Items and payments are written separately.
	Add(ctx context.Context, aggregate *order.Order) error

	// AddItems inserts items in batches of batchSize rows per statement.
	AddItems(ctx context.Context, items []*order.Item, batchSize int) error

	// AddPayment persists a payment of an existing order.
	AddPayment(ctx context.Context, payment *order.Payment) error

	// Get retrieves an order with its items and payments.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus persists the order's current status.
	UpdateStatus(ctx context.Context, aggregate *order.Order) error

	// ListIDsByStatus returns the ids of all orders in status, oldest first.
	ListIDsByStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error)
}
