package commands

import (
	"context"
)

// RemoveJobQueueEntryCommandHandler deletes a queue entry. Remaining positions are not
// renumbered, so the day may keep a gap.
type RemoveJobQueueEntryCommandHandler struct {
	uowFactory JobQueueUoWFactory
}

func NewRemoveJobQueueEntryCommandHandler(uowFactory JobQueueUoWFactory) RemoveJobQueueEntryCommandHandler {
	return RemoveJobQueueEntryCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveJobQueueEntryCommandHandler) Handle(ctx context.Context, cmd RemoveJobQueueEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.JobQueueRepository().Delete(ctx, cmd.EntryID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
