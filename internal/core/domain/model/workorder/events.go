package workorder

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
)

// Event is a fact recorded by the aggregate for the application layer to act on.
type Event interface {
	WorkOrderID() kernel.UUID
	OrderID() kernel.UUID
	OccurredAt() time.Time
}

type eventBase struct {
	workOrderID kernel.UUID
	orderID     kernel.UUID
	occurredAt  time.Time
}

func (e eventBase) WorkOrderID() kernel.UUID { return e.workOrderID }
func (e eventBase) OrderID() kernel.UUID     { return e.orderID }
func (e eventBase) OccurredAt() time.Time    { return e.occurredAt }

// WorkOrderCreated is recorded when a work order is opened for an order.
type WorkOrderCreated struct{ eventBase }

// WorkOrderCompleted is recorded when the last open step of a work order is finished.
type WorkOrderCompleted struct{ eventBase }

func NewWorkOrderCreated(workOrderID, orderID kernel.UUID, at time.Time) WorkOrderCreated {
	return WorkOrderCreated{eventBase{workOrderID: workOrderID, orderID: orderID, occurredAt: at}}
}

func NewWorkOrderCompleted(workOrderID, orderID kernel.UUID, at time.Time) WorkOrderCompleted {
	return WorkOrderCompleted{eventBase{workOrderID: workOrderID, orderID: orderID, occurredAt: at}}
}
