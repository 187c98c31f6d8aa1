package commands

import (
	"context"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// orderStatusUpdater applies work-order events to their orders inside the caller's
// transaction. The work-order engine never writes order rows itself.
type orderStatusUpdater struct {
	policy services.OrderStatusPolicy
}

func newOrderStatusUpdater() orderStatusUpdater {
	return orderStatusUpdater{policy: services.NewOrderStatusPolicy()}
}

// Apply loads each event's order unless it is the already loaded known order, applies
// the policy and persists the new status.
func (u orderStatusUpdater) Apply(
	ctx context.Context,
	orders ports.OrderRepository,
	known *order.Order,
	events []workorder.Event,
) error {
	for _, e := range events {
		o := known
		if o == nil || !o.ID().IsEqual(e.OrderID()) {
			loaded, err := orders.Get(ctx, e.OrderID())
			if err != nil {
				return err
			}
			o = loaded
		}
		if err := u.policy.Apply(o, e); err != nil {
			return err
		}
		if err := orders.UpdateStatus(ctx, o); err != nil {
			return err
		}
		known = o
	}
	return nil
}
