package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "laundry/internal/adapters/in/http"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockJobQueueLister struct{ mock.Mock }

func (m *MockJobQueueLister) Handle(ctx context.Context, query queries.ListJobQueueQuery) ([]queries.JobQueueEntryResponse, error) {
	args := m.Called(ctx, query)
	entries, _ := args.Get(0).([]queries.JobQueueEntryResponse)
	return entries, args.Error(1)
}

type MockOrderEnqueuer struct{ mock.Mock }

func (m *MockOrderEnqueuer) Handle(ctx context.Context, cmd commands.EnqueueOrderCommand) (*jobqueue.Entry, error) {
	args := m.Called(ctx, cmd)
	e, _ := args.Get(0).(*jobqueue.Entry)
	return e, args.Error(1)
}

type MockJobQueueEntryRemover struct{ mock.Mock }

func (m *MockJobQueueEntryRemover) Handle(ctx context.Context, cmd commands.RemoveJobQueueEntryCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockWorkOrderStepUpdater struct{ mock.Mock }

func (m *MockWorkOrderStepUpdater) Handle(ctx context.Context, cmd commands.UpdateWorkOrderStepCommand) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, cmd)
	wo, _ := args.Get(0).(*workorder.WorkOrder)
	return wo, args.Error(1)
}

type MockOrderStatusBatchCreator struct{ mock.Mock }

func (m *MockOrderStatusBatchCreator) Handle(ctx context.Context, cmd commands.CreateWorkOrdersByOrderStatusCommand) (commands.BatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.BatchResult), args.Error(1)
}

func newTestEcho(h apihttp.Handlers) *echo.Echo {
	e := echo.New()
	apihttp.RegisterHandlers(e, apihttp.NewServer(h), apihttp.Timeouts{Default: 5 * time.Second, Order: 5 * time.Second})
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apihttp.Error {
	t.Helper()
	var body apihttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20261016-00001",
		kernel.NewUUID(),
		decimal.RequireFromString("10000"),
		decimal.Zero,
		order.Details{Notes: "no starch"},
	)
	require.NoError(t, err)
	return o
}

func TestServer_CreateOrder(t *testing.T) {
	customerID := kernel.NewUUID()
	serviceID := kernel.NewUUID()
	body := fmt.Sprintf(`{"customerId":%q,"items":[{"serviceId":%q,"unit":"pcs","quantity":2,"price":"5000"}]}`,
		customerID, serviceID)

	t.Run("created", func(t *testing.T) {
		creator := &MockOrderCreator{}
		created := newOrder(t)
		creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.CustomerID().IsEqual(customerID) && len(cmd.Lines()) == 1
		})).Return(created, nil)

		rec := serve(newTestEcho(apihttp.Handlers{CreateOrder: creator}), http.MethodPost, "/api/v1/orders", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got apihttp.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, created.ID(), got.ID)
		assert.Equal(t, "ORD-20261016-00001", got.OrderNumber)
		assert.Equal(t, "NEW", got.Status)
		assert.True(t, decimal.RequireFromString("10000").Equal(got.TotalAmount))
		creator.AssertExpectations(t)
	})

	t.Run("quantity string beyond the maximum", func(t *testing.T) {
		creator := &MockOrderCreator{}
		huge := fmt.Sprintf(`{"customerId":%q,"items":[{"serviceId":%q,"quantity":"1e20","price":"5000"}]}`,
			customerID, serviceID)

		rec := serve(newTestEcho(apihttp.Handlers{CreateOrder: creator}), http.MethodPost, "/api/v1/orders", huge)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(newTestEcho(apihttp.Handlers{}), http.MethodPost, "/api/v1/orders", `{"customerId":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing customer is rejected before the handler", func(t *testing.T) {
		creator := &MockOrderCreator{}
		invalid := fmt.Sprintf(`{"items":[{"serviceId":%q,"unit":"pcs","quantity":1,"price":"5000"}]}`, serviceID)

		rec := serve(newTestEcho(apihttp.Handlers{CreateOrder: creator}), http.MethodPost, "/api/v1/orders", invalid)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("unknown service", func(t *testing.T) {
		creator := &MockOrderCreator{}
		creator.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("serviceId", serviceID))

		rec := serve(newTestEcho(apihttp.Handlers{CreateOrder: creator}), http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("storage failure hides details", func(t *testing.T) {
		creator := &MockOrderCreator{}
		creator.On("Handle", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: insert items: connection reset", commands.ErrOrderCreationFailed))

		rec := serve(newTestEcho(apihttp.Handlers{CreateOrder: creator}), http.MethodPost, "/api/v1/orders", body)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		got := decodeError(t, rec)
		assert.Equal(t, commands.ErrOrderCreationFailed.Error(), got.Message)
		assert.NotContains(t, got.Message, "connection reset")
	})
}

func TestServer_GetOrder(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		id := kernel.NewUUID()
		reader := &MockOrderReader{}
		reader.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderQueryResponse{
			ID:          id,
			OrderNumber: "ORD-20261016-00007",
			Status:      "PROCESSING",
			TotalAmount: decimal.RequireFromString("42000"),
			Items: []queries.OrderItemResponse{
				{ID: kernel.NewUUID(), ServiceName: "Wash & Fold", Quantity: 1},
			},
		}, nil)

		rec := serve(newTestEcho(apihttp.Handlers{GetOrder: reader}), http.MethodGet, "/api/v1/orders/"+id.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got apihttp.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "PROCESSING", got.Status)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Wash & Fold", got.Items[0].ServiceName)
	})

	t.Run("not found", func(t *testing.T) {
		id := kernel.NewUUID()
		reader := &MockOrderReader{}
		reader.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", id))

		rec := serve(newTestEcho(apihttp.Handlers{GetOrder: reader}), http.MethodGet, "/api/v1/orders/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		reader := &MockOrderReader{}

		rec := serve(newTestEcho(apihttp.Handlers{GetOrder: reader}), http.MethodGet, "/api/v1/orders/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		reader.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_ListJobQueue(t *testing.T) {
	t.Run("date is required", func(t *testing.T) {
		rec := serve(newTestEcho(apihttp.Handlers{ListJobQueue: &MockJobQueueLister{}}), http.MethodGet, "/api/v1/job-queues", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filters by date and status", func(t *testing.T) {
		day, err := kernel.ParseDate("2026-10-16")
		require.NoError(t, err)
		lister := &MockJobQueueLister{}
		lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListJobQueueQuery) bool {
			return q.Date().Equal(day) && q.Status() != nil && *q.Status() == order.Processing
		})).Return([]queries.JobQueueEntryResponse{
			{ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), ScheduledDate: day, QueuePosition: 1, ItemCount: 3},
		}, nil)

		rec := serve(newTestEcho(apihttp.Handlers{ListJobQueue: lister}), http.MethodGet,
			"/api/v1/job-queues?date=2026-10-16&status=PROCESSING", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got []apihttp.JobQueueEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].QueuePosition)
		assert.True(t, got[0].ScheduledDate.Equal(day))
		require.NotNil(t, got[0].ItemCount)
		assert.Equal(t, 3, *got[0].ItemCount)
		lister.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		lister := &MockJobQueueLister{}

		rec := serve(newTestEcho(apihttp.Handlers{ListJobQueue: lister}), http.MethodGet,
			"/api/v1/job-queues?date=2026-10-16&status=LOST", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		lister.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_EnqueueOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	body := fmt.Sprintf(`{"orderId":%q,"scheduledDate":"2026-10-16"}`, orderID)

	t.Run("created", func(t *testing.T) {
		day, err := kernel.ParseDate("2026-10-16")
		require.NoError(t, err)
		entry, err := jobqueue.NewEntry(kernel.NewUUID(), orderID, day, 2, day.At(12, 0, time.UTC), "")
		require.NoError(t, err)
		enqueuer := &MockOrderEnqueuer{}
		enqueuer.On("Handle", mock.Anything, mock.Anything).Return(entry, nil)

		rec := serve(newTestEcho(apihttp.Handlers{EnqueueOrder: enqueuer}), http.MethodPost, "/api/v1/job-queues", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got apihttp.JobQueueEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, orderID, got.OrderID)
		assert.Equal(t, 2, got.QueuePosition)
	})

	t.Run("already queued", func(t *testing.T) {
		enqueuer := &MockOrderEnqueuer{}
		enqueuer.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewConflictError("orderId", orderID))

		rec := serve(newTestEcho(apihttp.Handlers{EnqueueOrder: enqueuer}), http.MethodPost, "/api/v1/job-queues", body)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, orderID.String())
	})
}

func TestServer_RemoveJobQueueEntry(t *testing.T) {
	id := kernel.NewUUID()
	remover := &MockJobQueueEntryRemover{}
	remover.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RemoveJobQueueEntryCommand) bool {
		return cmd.EntryID().IsEqual(id)
	})).Return(nil)

	rec := serve(newTestEcho(apihttp.Handlers{RemoveEntry: remover}), http.MethodDelete, "/api/v1/job-queues/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	remover.AssertExpectations(t)
}

func TestServer_UpdateWorkOrderStep(t *testing.T) {
	woID, stepID := kernel.NewUUID(), kernel.NewUUID()
	target := "/api/v1/work-orders/" + woID.String() + "/steps/" + stepID.String()

	t.Run("updated", func(t *testing.T) {
		wo, err := workorder.NewWorkOrder(woID, workorder.Params{
			OrderID: kernel.NewUUID(),
			Number:  "WO-20261016-00001",
		}, time.Now())
		require.NoError(t, err)
		updater := &MockWorkOrderStepUpdater{}
		updater.On("Handle", mock.Anything, mock.Anything).Return(wo, nil)

		rec := serve(newTestEcho(apihttp.Handlers{UpdateStep: updater}), http.MethodPatch, target, `{"status":"IN_PROGRESS"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got apihttp.WorkOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, woID, got.ID)
		assert.Len(t, got.Steps, 6)
	})

	t.Run("step not in work order", func(t *testing.T) {
		updater := &MockWorkOrderStepUpdater{}
		updater.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("stepId", stepID))

		rec := serve(newTestEcho(apihttp.Handlers{UpdateStep: updater}), http.MethodPatch, target, `{"notes":"lint trap"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_CreateWorkOrdersByOrderStatus(t *testing.T) {
	t.Run("batch result", func(t *testing.T) {
		skipped := kernel.NewUUID()
		creator := &MockOrderStatusBatchCreator{}
		creator.On("Handle", mock.Anything, mock.Anything).Return(commands.BatchResult{
			Skipped: []kernel.UUID{skipped},
		}, nil)

		rec := serve(newTestEcho(apihttp.Handlers{FromOrders: creator}), http.MethodPost,
			"/api/v1/work-orders/from-orders", `{"status":"PROCESSING"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var got apihttp.BatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Empty(t, got.Created)
		assert.Equal(t, []kernel.UUID{skipped}, got.Skipped)
	})

	t.Run("unknown status", func(t *testing.T) {
		creator := &MockOrderStatusBatchCreator{}

		rec := serve(newTestEcho(apihttp.Handlers{FromOrders: creator}), http.MethodPost,
			"/api/v1/work-orders/from-orders", `{"status":"SHIPPED"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestHealth(t *testing.T) {
	rec := serve(newTestEcho(apihttp.Handlers{}), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}
