package http

import (
	"context"
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workorder"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// The handler contracts the server depends on; the application handlers satisfy them.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderReader interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	OrderEnqueuer interface {
		Handle(ctx context.Context, cmd commands.EnqueueOrderCommand) (*jobqueue.Entry, error)
	}
	JobQueueEntryUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateJobQueueEntryCommand) (*jobqueue.Entry, error)
	}
	JobQueueEntryRemover interface {
		Handle(ctx context.Context, cmd commands.RemoveJobQueueEntryCommand) error
	}
	JobQueueLister interface {
		Handle(ctx context.Context, query queries.ListJobQueueQuery) ([]queries.JobQueueEntryResponse, error)
	}
	WorkOrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateWorkOrderCommand) (*workorder.WorkOrder, error)
	}
	WorkOrderReader interface {
		Handle(ctx context.Context, query queries.GetWorkOrderQuery) (queries.GetWorkOrderQueryResponse, error)
	}
	WorkOrderRemover interface {
		Handle(ctx context.Context, cmd commands.RemoveWorkOrderCommand) error
	}
	WorkOrderStepUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateWorkOrderStepCommand) (*workorder.WorkOrder, error)
	}
	JobQueueBatchCreator interface {
		Handle(ctx context.Context, cmd commands.CreateWorkOrdersFromJobQueueCommand) (commands.BatchResult, error)
	}
	OrderStatusBatchCreator interface {
		Handle(ctx context.Context, cmd commands.CreateWorkOrdersByOrderStatusCommand) (commands.BatchResult, error)
	}
)

// Handlers groups everything the Server delegates to.
type Handlers struct {
	CreateOrder  OrderCreator
	GetOrder     OrderReader
	EnqueueOrder OrderEnqueuer
	UpdateEntry  JobQueueEntryUpdater
	RemoveEntry  JobQueueEntryRemover
	ListJobQueue JobQueueLister
	CreateWork   WorkOrderCreator
	GetWork      WorkOrderReader
	RemoveWork   WorkOrderRemover
	UpdateStep   WorkOrderStepUpdater
	FromJobQueue JobQueueBatchCreator
	FromOrders   OrderStatusBatchCreator
}

// Server turns HTTP requests into commands and queries. Path and query parameters are
// already bound by the route wrappers in routes.go.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(body.toInput())
	if err != nil {
		return respondError(ctx, err, "Invalid order data")
	}

	created, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to create order")
	}
	return ctx.JSON(http.StatusCreated, orderFromAggregate(created))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err, "Invalid order id")
	}

	resp, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve order")
	}
	return ctx.JSON(http.StatusOK, orderFromQuery(resp))
}

// ListJobQueue handles GET /api/v1/job-queues.
func (s *Server) ListJobQueue(ctx echo.Context, date openapi_types.Date, status *string) error {
	filter := ""
	if status != nil {
		filter = *status
	}
	query, err := queries.NewListJobQueueQuery(kernel.DateOf(date.Time), filter)
	if err != nil {
		return respondError(ctx, err, "Invalid job queue filter")
	}

	entries, err := s.h.ListJobQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve job queue")
	}

	response := make([]JobQueueEntry, len(entries))
	for i, entry := range entries {
		response[i] = entryFromQuery(entry)
	}
	return ctx.JSON(http.StatusOK, response)
}

// EnqueueOrder handles POST /api/v1/job-queues.
func (s *Server) EnqueueOrder(ctx echo.Context) error {
	var body NewJobQueueEntry
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewEnqueueOrderCommand(body.OrderID, body.ScheduledDate, body.QueuePosition, body.Notes)
	if err != nil {
		return respondError(ctx, err, "Invalid job queue entry")
	}

	entry, err := s.h.EnqueueOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to enqueue order")
	}
	return ctx.JSON(http.StatusCreated, entryFromAggregate(entry))
}

// UpdateJobQueueEntry handles PATCH /api/v1/job-queues/{entryId}.
func (s *Server) UpdateJobQueueEntry(ctx echo.Context, entryID kernel.UUID) error {
	var body JobQueueEntryPatch
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateJobQueueEntryCommand(entryID, commands.JobQueuePatch{
		Position:            body.QueuePosition,
		EstimatedCompletion: body.EstimatedCompletionTime,
		ActualCompletion:    body.ActualCompletionTime,
		Notes:               body.Notes,
	})
	if err != nil {
		return respondError(ctx, err, "Invalid job queue patch")
	}

	entry, err := s.h.UpdateEntry.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to update job queue entry")
	}
	return ctx.JSON(http.StatusOK, entryFromAggregate(entry))
}

// RemoveJobQueueEntry handles DELETE /api/v1/job-queues/{entryId}.
func (s *Server) RemoveJobQueueEntry(ctx echo.Context, entryID kernel.UUID) error {
	cmd, err := commands.NewRemoveJobQueueEntryCommand(entryID)
	if err != nil {
		return respondError(ctx, err, "Invalid job queue entry id")
	}
	if err = s.h.RemoveEntry.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to remove job queue entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateWorkOrder handles POST /api/v1/work-orders.
func (s *Server) CreateWorkOrder(ctx echo.Context) error {
	var body NewWorkOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateWorkOrderCommand(body.OrderID, body.JobQueueID, body.Priority, body.AssignedTo, body.Notes)
	if err != nil {
		return respondError(ctx, err, "Invalid work order data")
	}

	wo, err := s.h.CreateWork.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to create work order")
	}
	return ctx.JSON(http.StatusCreated, workOrderFromAggregate(wo))
}

// GetWorkOrder handles GET /api/v1/work-orders/{workOrderId}.
func (s *Server) GetWorkOrder(ctx echo.Context, workOrderID kernel.UUID) error {
	query, err := queries.NewGetWorkOrderQuery(workOrderID)
	if err != nil {
		return respondError(ctx, err, "Invalid work order id")
	}

	resp, err := s.h.GetWork.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve work order")
	}
	return ctx.JSON(http.StatusOK, workOrderFromQuery(resp))
}

// RemoveWorkOrder handles DELETE /api/v1/work-orders/{workOrderId}.
func (s *Server) RemoveWorkOrder(ctx echo.Context, workOrderID kernel.UUID) error {
	cmd, err := commands.NewRemoveWorkOrderCommand(workOrderID)
	if err != nil {
		return respondError(ctx, err, "Invalid work order id")
	}
	if err = s.h.RemoveWork.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to remove work order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UpdateWorkOrderStep handles PATCH /api/v1/work-orders/{workOrderId}/steps/{stepId}.
func (s *Server) UpdateWorkOrderStep(ctx echo.Context, workOrderID, stepID kernel.UUID) error {
	var body WorkOrderStepPatch
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateWorkOrderStepCommand(workOrderID, stepID, body.toDomain())
	if err != nil {
		return respondError(ctx, err, "Invalid step patch")
	}

	wo, err := s.h.UpdateStep.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to update work order step")
	}
	return ctx.JSON(http.StatusOK, workOrderFromAggregate(wo))
}

// CreateWorkOrdersFromJobQueue handles POST /api/v1/work-orders/from-job-queue.
func (s *Server) CreateWorkOrdersFromJobQueue(ctx echo.Context) error {
	var body struct {
		JobQueueIDs []kernel.UUID `json:"jobQueueIds"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateWorkOrdersFromJobQueueCommand(body.JobQueueIDs)
	if err != nil {
		return respondError(ctx, err, "Invalid job queue ids")
	}

	result, err := s.h.FromJobQueue.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to create work orders")
	}
	return ctx.JSON(http.StatusOK, batchFromResult(result))
}

// CreateWorkOrdersByOrderStatus handles POST /api/v1/work-orders/from-orders.
func (s *Server) CreateWorkOrdersByOrderStatus(ctx echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return respondError(ctx, err, "Invalid order status")
	}
	cmd, err := commands.NewCreateWorkOrdersByOrderStatusCommand(status)
	if err != nil {
		return respondError(ctx, err, "Invalid order status")
	}

	result, err := s.h.FromOrders.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to create work orders")
	}
	return ctx.JSON(http.StatusOK, batchFromResult(result))
}

var _ ServerInterface = (*Server)(nil)
