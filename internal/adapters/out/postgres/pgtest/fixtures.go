package pgtest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var orderSeq atomic.Int64

// NewOrder builds a restored order in status with a unique number and a 35000 total.
func NewOrder(status order.Status) *order.Order {
	n := orderSeq.Add(1)
	now := time.Now().UTC().Truncate(time.Microsecond)
	o, err := order.RestoreOrder(order.State{
		ID:          kernel.NewUUID(),
		Number:      fmt.Sprintf("ORD-20261016-%05d", n),
		CustomerID:  kernel.NewUUID(),
		Status:      status,
		TotalAmount: decimal.RequireFromString("35000"),
		TotalWeight: decimal.RequireFromString("3"),
		CreatedAt:   now.Add(time.Duration(n) * time.Millisecond),
		UpdatedAt:   now,
	})
	if err != nil {
		panic(err)
	}
	return o
}

// InsertOrder stores a NewOrder(status) and returns it.
func InsertOrder(ctx context.Context, db *gorm.DB, status order.Status) (*order.Order, error) {
	o := NewOrder(status)
	if err := orderrepo.NewGormOrderRepository(db).Add(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
