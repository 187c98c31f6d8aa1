package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateWorkOrderCommandIsNotConstructed = errors.New(
	"CreateWorkOrderCommand must be created via NewCreateWorkOrderCommand constructor",
)

// CreateWorkOrderCommand opens the work order of an order. jobQueueID may be zero; a
// zero priority means workorder.DefaultPriority.
type CreateWorkOrderCommand struct {
	params workorder.Params

	guard guard.ConstructorGuard
}

func NewCreateWorkOrderCommand(
	orderID, jobQueueID kernel.UUID,
	priority int,
	assignedTo, notes string,
) (CreateWorkOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CreateWorkOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if priority != 0 && (priority < workorder.MinPriority || priority > workorder.MaxPriority) {
		return CreateWorkOrderCommand{}, errs.NewValueIsOutOfRangeError(
			"priority", priority, workorder.MinPriority, workorder.MaxPriority)
	}
	return CreateWorkOrderCommand{
		params: workorder.Params{
			OrderID:    orderID,
			JobQueueID: jobQueueID,
			Priority:   priority,
			AssignedTo: assignedTo,
			Notes:      notes,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrderCommandIsNotConstructed)
}

func (c CreateWorkOrderCommand) OrderID() kernel.UUID    { return c.params.OrderID }
func (c CreateWorkOrderCommand) JobQueueID() kernel.UUID { return c.params.JobQueueID }
func (c CreateWorkOrderCommand) Priority() int           { return c.params.Priority }
