package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpdateWorkOrderStepCommandIsNotConstructed = errors.New(
	"UpdateWorkOrderStepCommand must be created via NewUpdateWorkOrderStepCommand constructor",
)

type UpdateWorkOrderStepCommand struct {
	workOrderID kernel.UUID
	stepID      kernel.UUID
	patch       workorder.StepPatch

	guard guard.ConstructorGuard
}

func NewUpdateWorkOrderStepCommand(
	workOrderID, stepID kernel.UUID,
	patch workorder.StepPatch,
) (UpdateWorkOrderStepCommand, error) {
	var statusErr error
	if patch.Status != nil {
		statusErr = patch.Status.Validate()
	}
	if err := errors.Join(
		requiredID("workOrderId", workOrderID),
		requiredID("stepId", stepID),
		statusErr,
	); err != nil {
		return UpdateWorkOrderStepCommand{}, err
	}
	return UpdateWorkOrderStepCommand{
		workOrderID: workOrderID,
		stepID:      stepID,
		patch:       patch,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateWorkOrderStepCommand) Validate() error {
	return c.guard.Validate(ErrUpdateWorkOrderStepCommandIsNotConstructed)
}

func (c UpdateWorkOrderStepCommand) WorkOrderID() kernel.UUID   { return c.workOrderID }
func (c UpdateWorkOrderStepCommand) StepID() kernel.UUID        { return c.stepID }
func (c UpdateWorkOrderStepCommand) Patch() workorder.StepPatch { return c.patch }

func requiredID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
