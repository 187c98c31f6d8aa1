package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrEnqueueOrderCommandIsNotConstructed = errors.New(
	"EnqueueOrderCommand must be created via NewEnqueueOrderCommand constructor",
)

// EnqueueOrderCommand schedules an order on a day's job queue. A nil position
// appends to the end of the day.
type EnqueueOrderCommand struct {
	orderID  kernel.UUID
	day      kernel.Date
	position *int
	notes    string

	guard guard.ConstructorGuard
}

func NewEnqueueOrderCommand(orderID kernel.UUID, day kernel.Date, position *int, notes string) (EnqueueOrderCommand, error) {
	cmd := EnqueueOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}
	if err := orderID.Validate(); err != nil {
		return EnqueueOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := day.Validate(); err != nil {
		return EnqueueOrderCommand{}, err
	}
	cmd.orderID, cmd.day = orderID, day
	if position != nil {
		p := *position
		cmd.position = &p
	}
	return cmd, nil
}

func (c EnqueueOrderCommand) Validate() error {
	return c.guard.Validate(ErrEnqueueOrderCommandIsNotConstructed)
}

func (c EnqueueOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c EnqueueOrderCommand) Day() kernel.Date     { return c.day }
func (c EnqueueOrderCommand) Position() *int       { return c.position }
func (c EnqueueOrderCommand) Notes() string        { return c.notes }
