package http

import (
	"fmt"
	"net/http"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// ServerInterface lists every operation of the API. Path and query parameters arrive
// bound and typed.
type ServerInterface interface {
	CreateOrder(ctx echo.Context) error
	GetOrder(ctx echo.Context, orderID kernel.UUID) error
	ListJobQueue(ctx echo.Context, date openapi_types.Date, status *string) error
	EnqueueOrder(ctx echo.Context) error
	UpdateJobQueueEntry(ctx echo.Context, entryID kernel.UUID) error
	RemoveJobQueueEntry(ctx echo.Context, entryID kernel.UUID) error
	CreateWorkOrder(ctx echo.Context) error
	CreateWorkOrdersFromJobQueue(ctx echo.Context) error
	CreateWorkOrdersByOrderStatus(ctx echo.Context) error
	GetWorkOrder(ctx echo.Context, workOrderID kernel.UUID) error
	RemoveWorkOrder(ctx echo.Context, workOrderID kernel.UUID) error
	UpdateWorkOrderStep(ctx echo.Context, workOrderID, stepID kernel.UUID) error
}

// Timeouts bounds request handling. Order intake gets its own, longer budget.
type Timeouts struct {
	Default time.Duration
	Order   time.Duration
}

// RegisterHandlers mounts the API, /health and the Swagger UI on e.
func RegisterHandlers(e *echo.Echo, si ServerInterface, timeouts Timeouts) {
	w := &wrapper{handler: si}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	orders := e.Group("/api/v1/orders", middleware.ContextTimeout(timeouts.Order))
	orders.POST("", w.CreateOrder)
	orders.GET("/:orderId", w.GetOrder)

	queues := e.Group("/api/v1/job-queues", middleware.ContextTimeout(timeouts.Default))
	queues.GET("", w.ListJobQueue)
	queues.POST("", w.EnqueueOrder)
	queues.PATCH("/:entryId", w.UpdateJobQueueEntry)
	queues.DELETE("/:entryId", w.RemoveJobQueueEntry)

	work := e.Group("/api/v1/work-orders", middleware.ContextTimeout(timeouts.Default))
	work.POST("", w.CreateWorkOrder)
	work.POST("/from-job-queue", w.CreateWorkOrdersFromJobQueue)
	work.POST("/from-orders", w.CreateWorkOrdersByOrderStatus)
	work.GET("/:workOrderId", w.GetWorkOrder)
	work.DELETE("/:workOrderId", w.RemoveWorkOrder)
	work.PATCH("/:workOrderId/steps/:stepId", w.UpdateWorkOrderStep)
}

// wrapper converts echo path and query parameters before calling the ServerInterface.
type wrapper struct {
	handler ServerInterface
}

func (w *wrapper) CreateOrder(ctx echo.Context) error {
	return w.handler.CreateOrder(ctx)
}

func (w *wrapper) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.handler.GetOrder(ctx, orderID)
}

func (w *wrapper) ListJobQueue(ctx echo.Context) error {
	var date openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, true, "date", ctx.QueryParams(), &date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter date: %s", err))
	}

	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return w.handler.ListJobQueue(ctx, date, status)
}

func (w *wrapper) EnqueueOrder(ctx echo.Context) error {
	return w.handler.EnqueueOrder(ctx)
}

func (w *wrapper) UpdateJobQueueEntry(ctx echo.Context) error {
	entryID, err := pathUUID(ctx, "entryId")
	if err != nil {
		return err
	}
	return w.handler.UpdateJobQueueEntry(ctx, entryID)
}

func (w *wrapper) RemoveJobQueueEntry(ctx echo.Context) error {
	entryID, err := pathUUID(ctx, "entryId")
	if err != nil {
		return err
	}
	return w.handler.RemoveJobQueueEntry(ctx, entryID)
}

func (w *wrapper) CreateWorkOrder(ctx echo.Context) error {
	return w.handler.CreateWorkOrder(ctx)
}

func (w *wrapper) CreateWorkOrdersFromJobQueue(ctx echo.Context) error {
	return w.handler.CreateWorkOrdersFromJobQueue(ctx)
}

func (w *wrapper) CreateWorkOrdersByOrderStatus(ctx echo.Context) error {
	return w.handler.CreateWorkOrdersByOrderStatus(ctx)
}

func (w *wrapper) GetWorkOrder(ctx echo.Context) error {
	workOrderID, err := pathUUID(ctx, "workOrderId")
	if err != nil {
		return err
	}
	return w.handler.GetWorkOrder(ctx, workOrderID)
}

func (w *wrapper) RemoveWorkOrder(ctx echo.Context) error {
	workOrderID, err := pathUUID(ctx, "workOrderId")
	if err != nil {
		return err
	}
	return w.handler.RemoveWorkOrder(ctx, workOrderID)
}

func (w *wrapper) UpdateWorkOrderStep(ctx echo.Context) error {
	workOrderID, err := pathUUID(ctx, "workOrderId")
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}
	return w.handler.UpdateWorkOrderStep(ctx, workOrderID, stepID)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}
