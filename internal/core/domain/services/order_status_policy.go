package services

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workorder"
)

// ErrUnhandledEvent is returned for event types the policy does not know.
var ErrUnhandledEvent = errors.New("unhandled work order event")

// OrderStatusPolicy translates work-order events into order status changes:
//   - WorkOrderCreated moves the order to PROCESSING
//   - WorkOrderCompleted moves the order to READY
//
// Example usage:
//
//	policy := services.NewOrderStatusPolicy()
//	for _, e := range wo.PullEvents() {
//	    if err := policy.Apply(o, e); err != nil {
//	        return err
//	    }
//	}
type OrderStatusPolicy struct{}

func NewOrderStatusPolicy() OrderStatusPolicy {
	return OrderStatusPolicy{}
}

// Apply mutates o according to event. The event must belong to o.
func (OrderStatusPolicy) Apply(o *order.Order, event workorder.Event) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("%w: nil", ErrUnhandledEvent)
	}
	if !event.OrderID().IsEqual(o.ID()) {
		return fmt.Errorf("event for order %s applied to order %s", event.OrderID(), o.ID())
	}

	switch event.(type) {
	case workorder.WorkOrderCreated:
		return o.Process()
	case workorder.WorkOrderCompleted:
		return o.MarkReady()
	default:
		return fmt.Errorf("%w: %T", ErrUnhandledEvent, event)
	}
}
