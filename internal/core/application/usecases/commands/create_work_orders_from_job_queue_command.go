package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateWorkOrdersFromJobQueueCommandIsNotConstructed = errors.New(
	"CreateWorkOrdersFromJobQueueCommand must be created via NewCreateWorkOrdersFromJobQueueCommand constructor",
)

type CreateWorkOrdersFromJobQueueCommand struct {
	jobQueueIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateWorkOrdersFromJobQueueCommand accepts a non-empty list of entry ids.
// Duplicates are dropped, keeping the first occurrence.
func NewCreateWorkOrdersFromJobQueueCommand(jobQueueIDs []kernel.UUID) (CreateWorkOrdersFromJobQueueCommand, error) {
	if len(jobQueueIDs) == 0 {
		return CreateWorkOrdersFromJobQueueCommand{}, errs.NewValueIsRequiredError("jobQueueIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(jobQueueIDs))
	ids := make([]kernel.UUID, 0, len(jobQueueIDs))
	for i, id := range jobQueueIDs {
		if err := requiredID(fmt.Sprintf("jobQueueIds[%d]", i), id); err != nil {
			return CreateWorkOrdersFromJobQueueCommand{}, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return CreateWorkOrdersFromJobQueueCommand{
		jobQueueIDs: ids,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateWorkOrdersFromJobQueueCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrdersFromJobQueueCommandIsNotConstructed)
}

func (c CreateWorkOrdersFromJobQueueCommand) JobQueueIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.jobQueueIDs...)
}
