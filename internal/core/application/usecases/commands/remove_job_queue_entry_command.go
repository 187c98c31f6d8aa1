package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRemoveJobQueueEntryCommandIsNotConstructed = errors.New(
	"RemoveJobQueueEntryCommand must be created via NewRemoveJobQueueEntryCommand constructor",
)

type RemoveJobQueueEntryCommand struct {
	entryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveJobQueueEntryCommand(entryID kernel.UUID) (RemoveJobQueueEntryCommand, error) {
	if err := entryID.Validate(); err != nil {
		return RemoveJobQueueEntryCommand{}, errs.NewValueIsRequiredErrorWithCause("entryId", err)
	}
	return RemoveJobQueueEntryCommand{entryID: entryID, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveJobQueueEntryCommand) Validate() error {
	return c.guard.Validate(ErrRemoveJobQueueEntryCommandIsNotConstructed)
}

func (c RemoveJobQueueEntryCommand) EntryID() kernel.UUID { return c.entryID }
