package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("items")
)

// PaymentInput is the payment taken at the counter together with the order.
type PaymentInput struct {
	Method        order.PaymentMethod
	Amount        *decimal.Decimal // nil means the order total
	TransactionID string
}

// CreateOrderInput collects the fields of an intake request.
type CreateOrderInput struct {
	CustomerID kernel.UUID
	Lines      []pricing.RawLine
	// TotalOverride is a negotiated price that beats everything else.
	TotalOverride *decimal.Decimal
	// TotalAmount is the total the client computed; used when there is no override.
	TotalAmount *decimal.Decimal
	Details     order.Details
	Payment     *PaymentInput
}

// CreateOrderCommand represents a request to take in a new laundry order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(CreateOrderInput{
//	    CustomerID: customerID,
//	    Lines: []pricing.RawLine{
//	        {ServiceID: shirtsID, Unit: pricing.UnitPiece, Quantity: pricing.NumberOf("2")},
//	        {ServiceID: washID, Weight: pricing.NumberOf("3,5")},
//	    },
//	    Payment: &PaymentInput{Method: order.Cash},
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	input CreateOrderInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Numeric fields are not rejected:
// they are normalized when the order is priced. Line errors name the line index.
func NewCreateOrderCommand(in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(in.CustomerID),
		cmd.setLines(in.Lines),
		cmd.setPayment(in.Payment),
		cmd.setTotals(in.TotalOverride, in.TotalAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.input.Details = in.Details

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.input.CustomerID }
func (c CreateOrderCommand) Details() order.Details  { return c.input.Details }
func (c CreateOrderCommand) Payment() *PaymentInput  { return c.input.Payment }

// Lines returns the raw lines in request order.
func (c CreateOrderCommand) Lines() []pricing.RawLine {
	return append([]pricing.RawLine(nil), c.input.Lines...)
}

// ExplicitTotal returns the override, else the client total, else nil.
func (c CreateOrderCommand) ExplicitTotal() *decimal.Decimal {
	if c.input.TotalOverride != nil {
		return c.input.TotalOverride
	}
	return c.input.TotalAmount
}

// ServiceIDs returns the distinct referenced service ids in first-seen order.
func (c CreateOrderCommand) ServiceIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.input.Lines))
	ids := make([]kernel.UUID, 0, len(c.input.Lines))
	for _, l := range c.input.Lines {
		if _, ok := seen[l.ServiceID]; ok {
			continue
		}
		seen[l.ServiceID] = struct{}{}
		ids = append(ids, l.ServiceID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.input.CustomerID = id
	return nil
}

func (c *CreateOrderCommand) setLines(lines []pricing.RawLine) error {
	if len(lines) == 0 {
		return ErrOrderHasNoItems
	}
	var err error
	for i, l := range lines {
		if lineErr := l.Validate(); lineErr != nil {
			err = errors.Join(err, fmt.Errorf("items[%d]: %w", i, lineErr))
		}
	}
	if err != nil {
		return err
	}
	c.input.Lines = append([]pricing.RawLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setPayment(p *PaymentInput) error {
	if p == nil {
		return nil
	}
	if err := p.Method.Validate(); err != nil {
		return err
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("payment.amount", fmt.Errorf("%s is negative", p.Amount))
	}
	payment := *p
	c.input.Payment = &payment
	return nil
}

func (c *CreateOrderCommand) setTotals(override, total *decimal.Decimal) error {
	var err error
	if override != nil && override.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("totalOverride", fmt.Errorf("%s is negative", override)))
	}
	if total != nil && total.IsNegative() {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", total)))
	}
	if err != nil {
		return err
	}
	c.input.TotalOverride, c.input.TotalAmount = override, total
	return nil
}
