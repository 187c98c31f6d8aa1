package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Details are the descriptive, caller-controlled fields of an order.
type Details struct {
	Notes               string
	SpecialRequirements string
	PickupDate          *time.Time
	DeliveryDate        *time.Time
	IsDeliveryNeeded    bool
}

// Order is the aggregate root for a customer's laundry order. It owns its items and
// payments.
//
// Order follows these invariants:
//   - id, number and customerID are always set
//   - totals are never negative
//   - a freshly created order is always New, whatever the caller asked for
//   - status only changes through Process and MarkReady, or through restore
type Order struct {
	id          kernel.UUID
	number      string
	customerID  kernel.UUID
	status      Status
	totalAmount decimal.Decimal
	totalWeight decimal.Decimal
	details     Details
	createdAt   time.Time
	updatedAt   time.Time

	items    []*Item
	payments []*Payment

	isConstructed bool
}

// NewOrder creates an order in New status.
//
// Example:
//
//	number, _ := kernel.FormatNumber(kernel.OrderNumberPrefix, today, seq)
//	o, err := order.NewOrder(kernel.NewUUID(), number, customerID, total, weight, order.Details{})
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	totalAmount, totalWeight decimal.Decimal,
	details Details,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        New,
		details:       details,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setTotals(totalAmount, totalWeight),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the persisted form of an order used by RestoreOrder.
type State struct {
	ID          kernel.UUID
	Number      string
	CustomerID  kernel.UUID
	Status      Status
	TotalAmount decimal.Decimal
	TotalWeight decimal.Decimal
	Details     Details
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []*Item
	Payments    []*Payment
}

// RestoreOrder rebuilds an order loaded from storage. Unlike NewOrder it keeps the
// stored status.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		details:       s.Details,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		items:         s.Items,
		payments:      s.Payments,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setCustomerID(s.CustomerID),
		o.setTotals(s.TotalAmount, s.TotalWeight),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) CustomerID() kernel.UUID      { return o.customerID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) TotalWeight() decimal.Decimal { return o.totalWeight }
func (o *Order) Details() Details             { return o.details }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

// Items returns the order's items. The slice is a copy; the items are shared.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// Payments returns the order's payments. The slice is a copy; the payments are shared.
func (o *Order) Payments() []*Payment {
	return append([]*Payment(nil), o.payments...)
}

// ItemCount is the number of item rows, which drives queue ETA estimation.
func (o *Order) ItemCount() int {
	return len(o.items)
}

// Process moves the order into processing. Called when its work order is created.
func (o *Order) Process() error {
	next, err := o.status.Process()
	if err != nil {
		return err
	}
	o.changeStatus(next)
	return nil
}

// MarkReady reports that every processing step is done. Called when the work order
// completes.
func (o *Order) MarkReady() error {
	next, err := o.status.Ready()
	if err != nil {
		return err
	}
	o.changeStatus(next)
	return nil
}

func (o *Order) changeStatus(next Status) {
	o.status = next
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if !strings.HasPrefix(number, string(kernel.OrderNumberPrefix)+"-") {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderNumber",
			fmt.Errorf("%q does not start with %s-", number, kernel.OrderNumberPrefix),
		)
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setTotals(amount, weight decimal.Decimal) error {
	var err error
	if amount.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", amount)))
	}
	if weight.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("totalWeight", fmt.Errorf("%s is negative", weight)))
	}
	if err != nil {
		return err
	}
	o.totalAmount, o.totalWeight = amount, weight
	return nil
}
