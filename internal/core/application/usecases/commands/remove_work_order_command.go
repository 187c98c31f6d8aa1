package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrRemoveWorkOrderCommandIsNotConstructed = errors.New(
	"RemoveWorkOrderCommand must be created via NewRemoveWorkOrderCommand constructor",
)

type RemoveWorkOrderCommand struct {
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveWorkOrderCommand(workOrderID kernel.UUID) (RemoveWorkOrderCommand, error) {
	if err := requiredID("workOrderId", workOrderID); err != nil {
		return RemoveWorkOrderCommand{}, err
	}
	return RemoveWorkOrderCommand{workOrderID: workOrderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemoveWorkOrderCommandIsNotConstructed)
}

func (c RemoveWorkOrderCommand) WorkOrderID() kernel.UUID { return c.workOrderID }
