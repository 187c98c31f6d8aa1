package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListJobQueueQueryIsNotConstructed = errors.New(
	"ListJobQueueQuery must be created via NewListJobQueueQuery constructor",
)

// ListJobQueueQuery lists one day's queue, optionally only the entries whose order is
// in a given status.
type ListJobQueueQuery struct {
	date   kernel.Date
	status *order.Status
	guard  guard.ConstructorGuard
}

// NewListJobQueueQuery builds the query. An empty status lists every entry.
func NewListJobQueueQuery(date kernel.Date, status string) (ListJobQueueQuery, error) {
	if date.IsZero() {
		return ListJobQueueQuery{}, errs.NewValueIsRequiredError("date")
	}

	q := ListJobQueueQuery{date: date, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListJobQueueQuery{}, err
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListJobQueueQuery) Date() kernel.Date { return q.date }

// Status is nil when the query is not filtered.
func (q ListJobQueueQuery) Status() *order.Status { return q.status }

func (q ListJobQueueQuery) Validate() error {
	return q.guard.Validate(ErrListJobQueueQueryIsNotConstructed)
}

// JobQueueEntryResponse is a queue entry joined with the facts about its order that
// drive the ETA.
type JobQueueEntryResponse struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	OrderNumber         string
	OrderStatus         string
	ScheduledDate       kernel.Date
	QueuePosition       int
	EstimatedCompletion *time.Time
	ActualCompletion    *time.Time
	Notes               string
	ItemCount           int
	TotalWeight         decimal.Decimal
}
