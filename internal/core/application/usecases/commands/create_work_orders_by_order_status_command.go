package commands

import (
	"errors"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateWorkOrdersByOrderStatusCommandIsNotConstructed = errors.New(
	"CreateWorkOrdersByOrderStatusCommand must be created via NewCreateWorkOrdersByOrderStatusCommand constructor",
)

type CreateWorkOrdersByOrderStatusCommand struct {
	status order.Status

	guard guard.ConstructorGuard
}

func NewCreateWorkOrdersByOrderStatusCommand(status order.Status) (CreateWorkOrdersByOrderStatusCommand, error) {
	if err := status.Validate(); err != nil {
		return CreateWorkOrdersByOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	return CreateWorkOrdersByOrderStatusCommand{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateWorkOrdersByOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrdersByOrderStatusCommandIsNotConstructed)
}

func (c CreateWorkOrdersByOrderStatusCommand) Status() order.Status { return c.status }
