package commands_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWorkOrderFactory(uow *MockUoW) *MockWorkOrderUoWFactory {
	factory := new(MockWorkOrderUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

func newOpenWorkOrder(t *testing.T, orderID kernel.UUID) *workorder.WorkOrder {
	t.Helper()
	wo, err := workorder.NewWorkOrder(kernel.NewUUID(), workorder.Params{
		OrderID: orderID,
		Number:  "WO-20261016-00001",
	}, time.Now().UTC())
	require.NoError(t, err)
	wo.PullEvents()
	return wo
}

func stepStatus(s workorder.StepStatus) *workorder.StepStatus { return &s }

func TestNewCreateWorkOrderCommand(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCreateWorkOrderCommand(orderID, kernel.UUID{}, 0, "", "")
		require.NoError(t, err)
		assert.Equal(t, orderID, cmd.OrderID())
		assert.True(t, cmd.JobQueueID().IsZero())
	})

	t.Run("priority out of range", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrderCommand(kernel.NewUUID(), kernel.UUID{}, 6, "", "")
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrderCommand(kernel.UUID{}, kernel.UUID{}, 1, "", "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCreateWorkOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	o := newTestOrder(order.New)
	cmd, err := commands.NewCreateWorkOrderCommand(o.ID(), kernel.UUID{}, 2, "Sari", "")
	require.NoError(t, err)

	var added *workorder.WorkOrder
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		m.works.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once(),
		m.sequences.On("Next", ctx, kernel.WorkOrderNumberPrefix, mock.AnythingOfType("kernel.Date")).
			Return(int64(1), nil).Once(),
		m.works.On("Add", ctx, mock.AnythingOfType("*workorder.WorkOrder")).
			Run(func(args mock.Arguments) { added = args.Get(1).(*workorder.WorkOrder) }).
			Return(nil).Once(),
		m.orders.On("UpdateStatus", ctx, o).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateWorkOrderCommandHandler(newWorkOrderFactory(m.uow), time.UTC)
	wo, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Same(t, added, wo)
	assert.Equal(t, workorder.Pending, wo.Status())
	assert.Equal(t, workorder.Sorting, wo.CurrentStep())
	assert.Equal(t, 2, wo.Priority())
	assert.Equal(t, "Sari", wo.AssignedTo())
	assert.Len(t, wo.Steps(), 6)
	assert.True(t, strings.HasPrefix(wo.Number(), "WO-"), wo.Number())
	assert.True(t, strings.HasSuffix(wo.Number(), "-00001"), wo.Number())
	assert.Equal(t, order.Processing, o.Status())
	assert.Empty(t, wo.PullEvents(), "events are consumed inside the transaction")
	m.assert(t)
}

func TestCreateWorkOrderCommandHandler_Handle_SecondWorkOrderConflicts(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	o := newTestOrder(order.Processing)
	cmd, err := commands.NewCreateWorkOrderCommand(o.ID(), kernel.UUID{}, 0, "", "")
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	m.works.On("ExistsForOrder", ctx, o.ID()).Return(true, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateWorkOrderCommandHandler(newWorkOrderFactory(m.uow), time.UTC)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	m.works.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", ctx)
	m.assert(t)
}

func TestCreateWorkOrderCommandHandler_Handle_UnknownJobQueueEntry(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	o := newTestOrder(order.New)
	entryID := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkOrderCommand(o.ID(), entryID, 0, "", "")
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	m.works.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
	m.queue.On("Get", ctx, entryID).Return(nil, errs.NewObjectNotFoundError("jobQueueId", entryID)).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateWorkOrderCommandHandler(newWorkOrderFactory(m.uow), time.UTC)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	m.assert(t)
}

func TestCreateWorkOrderCommandHandler_Handle_UnknownOrder(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkOrderCommand(orderID, kernel.UUID{}, 0, "", "")
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.orders.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewCreateWorkOrderCommandHandler(newWorkOrderFactory(m.uow), time.UTC)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	m.assert(t)
}

func TestNewUpdateWorkOrderStepCommand(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateWorkOrderStepCommand(kernel.NewUUID(), kernel.NewUUID(), workorder.StepPatch{
			Status: stepStatus("DONE"),
		})
		assert.Error(t, err)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := commands.NewUpdateWorkOrderStepCommand(kernel.UUID{}, kernel.UUID{}, workorder.StepPatch{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workOrderId")
		assert.Contains(t, err.Error(), "stepId")
	})
}

// Completing the six steps one request at a time completes the work order and makes
// the order READY in the request that finishes the last step.
func TestUpdateWorkOrderStepCommandHandler_Handle_LastStepCompletesOrder(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	o := newTestOrder(order.Processing)
	wo := newOpenWorkOrder(t, o.ID())

	m.uow.On("Begin", ctx).Return(nil).Times(6)
	m.works.On("GetForUpdate", ctx, wo.ID()).Return(wo, nil).Times(6)
	m.works.On("Update", ctx, wo, mock.AnythingOfType("*workorder.Step")).Return(nil).Times(6)
	m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	m.orders.On("UpdateStatus", ctx, o).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Times(6)
	m.uow.On("Rollback", ctx).Return(nil).Times(6)

	h := commands.NewUpdateWorkOrderStepCommandHandler(newWorkOrderFactory(m.uow))
	steps := wo.Steps()
	for i, step := range steps {
		cmd, err := commands.NewUpdateWorkOrderStepCommand(wo.ID(), step.ID(), workorder.StepPatch{
			Status: stepStatus(workorder.StepCompleted),
		})
		require.NoError(t, err)

		got, err := h.Handle(ctx, cmd)
		require.NoError(t, err)
		if i < len(steps)-1 {
			assert.Equal(t, workorder.InProgress, got.Status())
			assert.Equal(t, order.Processing, o.Status())
		}
	}

	assert.Equal(t, workorder.Completed, wo.Status())
	assert.NotNil(t, wo.EndTime())
	assert.Equal(t, order.Ready, o.Status())
	m.assert(t)
}

func TestUpdateWorkOrderStepCommandHandler_Handle_TerminalStepRejected(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	wo := newOpenWorkOrder(t, kernel.NewUUID())
	step := wo.Steps()[0]
	_, err := wo.UpdateStep(step.ID(), workorder.StepPatch{Status: stepStatus(workorder.StepSkipped)}, time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewUpdateWorkOrderStepCommand(wo.ID(), step.ID(), workorder.StepPatch{
		Status: stepStatus(workorder.StepInProgress),
	})
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.works.On("GetForUpdate", ctx, wo.ID()).Return(wo, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateWorkOrderStepCommandHandler(newWorkOrderFactory(m.uow))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	m.works.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit", ctx)
	m.assert(t)
}

func TestUpdateWorkOrderStepCommandHandler_Handle_UnknownStep(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	wo := newOpenWorkOrder(t, kernel.NewUUID())
	cmd, err := commands.NewUpdateWorkOrderStepCommand(wo.ID(), kernel.NewUUID(), workorder.StepPatch{})
	require.NoError(t, err)

	m.uow.On("Begin", ctx).Return(nil).Once()
	m.works.On("GetForUpdate", ctx, wo.ID()).Return(wo, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewUpdateWorkOrderStepCommandHandler(newWorkOrderFactory(m.uow))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	m.assert(t)
}

// Three PROCESSING orders, one of which already has a work order: two are created, the
// third is skipped and the batch still succeeds.
func TestCreateWorkOrdersByOrderStatusCommandHandler_Handle_SkipsExisting(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	first, second, third := newTestOrder(order.Processing), newTestOrder(order.Processing), newTestOrder(order.Processing)
	cmd, err := commands.NewCreateWorkOrdersByOrderStatusCommand(order.Processing)
	require.NoError(t, err)

	m.orders.On("ListIDsByStatus", ctx, order.Processing).
		Return([]kernel.UUID{first.ID(), second.ID(), third.ID()}, nil).Once()
	m.uow.On("Begin", ctx).Return(nil).Times(3)
	for _, o := range []*order.Order{first, second, third} {
		m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	}
	m.works.On("ExistsForOrder", ctx, first.ID()).Return(false, nil).Once()
	m.works.On("ExistsForOrder", ctx, second.ID()).Return(true, nil).Once()
	m.works.On("ExistsForOrder", ctx, third.ID()).Return(false, nil).Once()
	m.sequences.On("Next", ctx, kernel.WorkOrderNumberPrefix, mock.AnythingOfType("kernel.Date")).
		Return(int64(1), nil).Once()
	m.sequences.On("Next", ctx, kernel.WorkOrderNumberPrefix, mock.AnythingOfType("kernel.Date")).
		Return(int64(2), nil).Once()
	m.works.On("Add", ctx, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Twice()
	m.orders.On("UpdateStatus", ctx, first).Return(nil).Once()
	m.orders.On("UpdateStatus", ctx, third).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Twice()
	m.uow.On("Rollback", ctx).Return(nil).Times(3)

	factory := newWorkOrderFactory(m.uow)
	h := commands.NewCreateWorkOrdersByOrderStatusCommandHandler(factory, time.UTC, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, first.ID(), result.Created[0].OrderID())
	assert.Equal(t, third.ID(), result.Created[1].OrderID())
	assert.Equal(t, []kernel.UUID{second.ID()}, result.Skipped)
	assert.Empty(t, result.Failed)
	factory.AssertNumberOfCalls(t, "Create", 4)
	m.assert(t)
}

func TestCreateWorkOrdersByOrderStatusCommandHandler_Handle_ListError(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	cmd, err := commands.NewCreateWorkOrdersByOrderStatusCommand(order.New)
	require.NoError(t, err)

	m.orders.On("ListIDsByStatus", ctx, order.New).Return(nil, errors.New("connection reset")).Once()

	h := commands.NewCreateWorkOrdersByOrderStatusCommandHandler(newWorkOrderFactory(m.uow), time.UTC, discardLogger())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	m.uow.AssertNotCalled(t, "Begin", mock.Anything)
	m.assert(t)
}

func TestCreateWorkOrdersFromJobQueueCommandHandler_Handle_FailureDoesNotStopBatch(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	o := newTestOrder(order.New)
	entry := newQueueEntry(t, o.ID(), 1)
	missing := kernel.NewUUID()
	cmd, err := commands.NewCreateWorkOrdersFromJobQueueCommand([]kernel.UUID{missing, entry.ID(), missing})
	require.NoError(t, err)
	assert.Len(t, cmd.JobQueueIDs(), 2, "duplicates are dropped")

	m.uow.On("Begin", ctx).Return(nil).Twice()
	m.queue.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("jobQueueId", missing)).Once()
	m.queue.On("Get", ctx, entry.ID()).Return(entry, nil).Twice()
	m.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	m.works.On("ExistsForOrder", ctx, o.ID()).Return(false, nil).Once()
	m.sequences.On("Next", ctx, kernel.WorkOrderNumberPrefix, mock.AnythingOfType("kernel.Date")).
		Return(int64(4), nil).Once()
	m.works.On("Add", ctx, mock.AnythingOfType("*workorder.WorkOrder")).Return(nil).Once()
	m.orders.On("UpdateStatus", ctx, o).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Twice()

	h := commands.NewCreateWorkOrdersFromJobQueueCommandHandler(newWorkOrderFactory(m.uow), time.UTC, discardLogger())
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.Created, 1)
	assert.Equal(t, entry.ID(), result.Created[0].JobQueueID())
	require.Len(t, result.Failed, 1)
	assert.Equal(t, missing, result.Failed[0].ID)
	assert.ErrorIs(t, result.Failed[0].Err, errs.ErrObjectNotFound)
	assert.Equal(t, order.Processing, o.Status())
	m.assert(t)
}

func TestNewCreateWorkOrdersFromJobQueueCommand_Empty(t *testing.T) {
	_, err := commands.NewCreateWorkOrdersFromJobQueueCommand(nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRemoveWorkOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	m := newTxMocks()
	id := kernel.NewUUID()
	cmd, err := commands.NewRemoveWorkOrderCommand(id)
	require.NoError(t, err)

	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.works.On("Delete", ctx, id).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewRemoveWorkOrderCommandHandler(newWorkOrderFactory(m.uow))
	require.NoError(t, h.Handle(ctx, cmd))
	m.assert(t)
}
