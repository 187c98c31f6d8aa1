package commands

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpdateJobQueueEntryCommandIsNotConstructed = errors.New(
	"UpdateJobQueueEntryCommand must be created via NewUpdateJobQueueEntryCommand constructor",
)

// JobQueuePatch lists the entry fields to change; nil fields are left alone.
type JobQueuePatch struct {
	Position            *int
	EstimatedCompletion *time.Time
	ActualCompletion    *time.Time
	Notes               *string
}

type UpdateJobQueueEntryCommand struct {
	entryID kernel.UUID
	patch   JobQueuePatch

	guard guard.ConstructorGuard
}

func NewUpdateJobQueueEntryCommand(entryID kernel.UUID, patch JobQueuePatch) (UpdateJobQueueEntryCommand, error) {
	if err := entryID.Validate(); err != nil {
		return UpdateJobQueueEntryCommand{}, errs.NewValueIsRequiredErrorWithCause("entryId", err)
	}
	return UpdateJobQueueEntryCommand{
		entryID: entryID,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateJobQueueEntryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobQueueEntryCommandIsNotConstructed)
}

func (c UpdateJobQueueEntryCommand) EntryID() kernel.UUID { return c.entryID }
func (c UpdateJobQueueEntryCommand) Patch() JobQueuePatch { return c.patch }
