package order

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is an order line. ServiceName is a snapshot taken at intake so renaming a
// service later does not rewrite old orders.
type Item struct {
	id          kernel.UUID
	orderID     kernel.UUID
	serviceID   kernel.UUID
	serviceName string
	quantity    int
	weight      *decimal.Decimal
	unitPrice   decimal.Decimal
	subtotal    decimal.Decimal
}

// NewItem prices a normalized line for the given order. Weight is recorded only for
// weight-based lines.
func NewItem(id, orderID kernel.UUID, serviceName string, line pricing.Line) (*Item, error) {
	if line == nil {
		return nil, errs.NewValueIsRequiredError("line")
	}
	item := &Item{
		quantity:  line.Quantity(),
		unitPrice: line.UnitPrice(),
		subtotal:  line.Subtotal(),
	}
	if w, ok := line.(pricing.Weight); ok {
		kg := w.Kilograms()
		item.weight = &kg
	}
	if err := errors.Join(
		item.setIDs(id, orderID, line.ServiceID()),
		item.setServiceName(serviceName),
	); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreItem rebuilds an item loaded from storage and re-checks the subtotal invariant.
func RestoreItem(
	id, orderID, serviceID kernel.UUID,
	serviceName string,
	quantity int,
	weight *decimal.Decimal,
	unitPrice, subtotal decimal.Decimal,
) (*Item, error) {
	item := &Item{
		quantity:  quantity,
		weight:    weight,
		unitPrice: unitPrice,
		subtotal:  subtotal,
	}
	if err := errors.Join(
		item.setIDs(id, orderID, serviceID),
		item.setServiceName(serviceName),
		item.checkSubtotal(),
	); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) ID() kernel.UUID            { return i.id }
func (i *Item) OrderID() kernel.UUID       { return i.orderID }
func (i *Item) ServiceID() kernel.UUID     { return i.serviceID }
func (i *Item) ServiceName() string        { return i.serviceName }
func (i *Item) Quantity() int              { return i.quantity }
func (i *Item) Weight() *decimal.Decimal   { return i.weight }
func (i *Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i *Item) Subtotal() decimal.Decimal  { return i.subtotal }

// IsWeightBased reports whether the item is charged per kilogram.
func (i *Item) IsWeightBased() bool {
	return i.weight != nil
}

// EffectiveQuantity is the multiplier behind the subtotal: kilograms for weight-based
// items, pieces otherwise.
func (i *Item) EffectiveQuantity() decimal.Decimal {
	if i.weight != nil {
		return *i.weight
	}
	return decimal.NewFromInt(int64(i.quantity))
}

func (i *Item) checkSubtotal() error {
	expected := i.unitPrice.Mul(i.EffectiveQuantity()).Round(2)
	if !expected.Equal(i.subtotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("%s does not equal %s * %s", i.subtotal, i.unitPrice, i.EffectiveQuantity()),
		)
	}
	return nil
}

func (i *Item) setIDs(id, orderID, serviceID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), serviceID.Validate()); err != nil {
		return err
	}
	i.id, i.orderID, i.serviceID = id, orderID, serviceID
	return nil
}

func (i *Item) setServiceName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("serviceName")
	}
	i.serviceName = name
	return nil
}
