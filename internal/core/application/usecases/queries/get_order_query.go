package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery loads one order with its items and payments.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	order, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if orderID.IsZero() {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	OrderNumber         string
	CustomerID          kernel.UUID
	Status              string
	TotalAmount         decimal.Decimal
	TotalWeight         decimal.Decimal
	Notes               string
	SpecialRequirements string
	PickupDate          *time.Time
	DeliveryDate        *time.Time
	IsDeliveryNeeded    bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []OrderItemResponse
	Payments            []PaymentResponse
}

// OrderItemResponse is one order line. Weight is nil for per-piece lines.
type OrderItemResponse struct {
	ID          kernel.UUID
	ServiceID   kernel.UUID
	ServiceName string
	Quantity    int
	Weight      *decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type PaymentResponse struct {
	ID              kernel.UUID
	Amount          decimal.Decimal
	PaymentMethod   string
	Status          string
	ReferenceNumber string
	TransactionID   string
	CreatedAt       time.Time
}
