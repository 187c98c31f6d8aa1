package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

type GetWorkOrderQuery struct {
	workOrderID kernel.UUID
	guard       guard.ConstructorGuard
}

func NewGetWorkOrderQuery(workOrderID kernel.UUID) (GetWorkOrderQuery, error) {
	if workOrderID.IsZero() {
		return GetWorkOrderQuery{}, errs.NewValueIsRequiredError("workOrderId")
	}
	return GetWorkOrderQuery{workOrderID: workOrderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWorkOrderQuery) WorkOrderID() kernel.UUID { return q.workOrderID }

func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

// GetWorkOrderQueryResponse is a work order with its steps in processing order.
// JobQueueID is nil when the work order was not created from the queue.
type GetWorkOrderQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	JobQueueID      *kernel.UUID
	WorkOrderNumber string
	Status          string
	AssignedTo      string
	Priority        int
	StartTime       *time.Time
	EndTime         *time.Time
	CurrentStep     string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Steps           []WorkOrderStepResponse
}

type WorkOrderStepResponse struct {
	ID              kernel.UUID
	StepType        string
	SequenceNumber  int
	Status          string
	AssignedTo      string
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Notes           string
}
