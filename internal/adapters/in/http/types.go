package http

import (
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/core/domain/model/workorder"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewOrderItem struct {
	ServiceID kernel.UUID       `json:"serviceId"`
	Unit      string            `json:"unit,omitempty"`
	Quantity  pricing.RawNumber `json:"quantity"`
	Weight    pricing.RawNumber `json:"weight"`
	Price     pricing.RawNumber `json:"price"`
}

type NewPayment struct {
	PaymentMethod string            `json:"paymentMethod"`
	Amount        pricing.RawNumber `json:"amount"`
	TransactionID string            `json:"transactionId"`
}

type NewOrder struct {
	CustomerID          kernel.UUID       `json:"customerId"`
	Items               []NewOrderItem    `json:"items"`
	TotalOverride       pricing.RawNumber `json:"totalOverride"`
	TotalAmount         pricing.RawNumber `json:"totalAmount"`
	Notes               string            `json:"notes"`
	SpecialRequirements string            `json:"specialRequirements"`
	PickupDate          *time.Time        `json:"pickupDate"`
	DeliveryDate        *time.Time        `json:"deliveryDate"`
	IsDeliveryNeeded    bool              `json:"isDeliveryNeeded"`
	Payment             *NewPayment       `json:"payment"`
}

func (n NewOrder) toInput() commands.CreateOrderInput {
	lines := make([]pricing.RawLine, 0, len(n.Items))
	for _, item := range n.Items {
		lines = append(lines, pricing.RawLine{
			ServiceID: item.ServiceID,
			Unit:      pricing.Unit(item.Unit),
			Quantity:  item.Quantity,
			Weight:    item.Weight,
			Price:     item.Price,
		})
	}

	in := commands.CreateOrderInput{
		CustomerID:    n.CustomerID,
		Lines:         lines,
		TotalOverride: optionalDecimal(n.TotalOverride),
		TotalAmount:   optionalDecimal(n.TotalAmount),
		Details: order.Details{
			Notes:               n.Notes,
			SpecialRequirements: n.SpecialRequirements,
			PickupDate:          n.PickupDate,
			DeliveryDate:        n.DeliveryDate,
			IsDeliveryNeeded:    n.IsDeliveryNeeded,
		},
	}
	if n.Payment != nil {
		in.Payment = &commands.PaymentInput{
			Method:        order.PaymentMethod(n.Payment.PaymentMethod),
			Amount:        optionalDecimal(n.Payment.Amount),
			TransactionID: n.Payment.TransactionID,
		}
	}
	return in
}

func optionalDecimal(n pricing.RawNumber) *decimal.Decimal {
	if !n.IsPresent() {
		return nil
	}
	d := n.Decimal()
	return &d
}

type OrderItem struct {
	ID          kernel.UUID      `json:"id"`
	ServiceID   kernel.UUID      `json:"serviceId"`
	ServiceName string           `json:"serviceName"`
	Quantity    int              `json:"quantity"`
	Weight      *decimal.Decimal `json:"weight"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
}

type Payment struct {
	ID              kernel.UUID     `json:"id"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	ReferenceNumber string          `json:"referenceNumber"`
	TransactionID   string          `json:"transactionId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type Order struct {
	ID                  kernel.UUID     `json:"id"`
	OrderNumber         string          `json:"orderNumber"`
	CustomerID          kernel.UUID     `json:"customerId"`
	Status              string          `json:"status"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	TotalWeight         decimal.Decimal `json:"totalWeight"`
	Notes               string          `json:"notes"`
	SpecialRequirements string          `json:"specialRequirements"`
	PickupDate          *time.Time      `json:"pickupDate"`
	DeliveryDate        *time.Time      `json:"deliveryDate"`
	IsDeliveryNeeded    bool            `json:"isDeliveryNeeded"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	Items               []OrderItem     `json:"items"`
	Payments            []Payment       `json:"payments"`
}

func orderFromAggregate(o *order.Order) Order {
	d := o.Details()
	resp := Order{
		ID:                  o.ID(),
		OrderNumber:         o.Number(),
		CustomerID:          o.CustomerID(),
		Status:              o.Status().String(),
		TotalAmount:         o.TotalAmount(),
		TotalWeight:         o.TotalWeight(),
		Notes:               d.Notes,
		SpecialRequirements: d.SpecialRequirements,
		PickupDate:          d.PickupDate,
		DeliveryDate:        d.DeliveryDate,
		IsDeliveryNeeded:    d.IsDeliveryNeeded,
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
		Items:               make([]OrderItem, 0, len(o.Items())),
		Payments:            make([]Payment, 0, len(o.Payments())),
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItem{
			ID:          item.ID(),
			ServiceID:   item.ServiceID(),
			ServiceName: item.ServiceName(),
			Quantity:    item.Quantity(),
			Weight:      item.Weight(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    item.Subtotal(),
		})
	}
	for _, p := range o.Payments() {
		resp.Payments = append(resp.Payments, Payment{
			ID:              p.ID(),
			Amount:          p.Amount(),
			PaymentMethod:   string(p.Method()),
			Status:          string(p.Status()),
			ReferenceNumber: p.ReferenceNumber(),
			TransactionID:   p.TransactionID(),
			CreatedAt:       p.CreatedAt(),
		})
	}
	return resp
}

func orderFromQuery(r queries.GetOrderQueryResponse) Order {
	resp := Order{
		ID:                  r.ID,
		OrderNumber:         r.OrderNumber,
		CustomerID:          r.CustomerID,
		Status:              r.Status,
		TotalAmount:         r.TotalAmount,
		TotalWeight:         r.TotalWeight,
		Notes:               r.Notes,
		SpecialRequirements: r.SpecialRequirements,
		PickupDate:          r.PickupDate,
		DeliveryDate:        r.DeliveryDate,
		IsDeliveryNeeded:    r.IsDeliveryNeeded,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
		Items:               make([]OrderItem, 0, len(r.Items)),
		Payments:            make([]Payment, 0, len(r.Payments)),
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, OrderItem(item))
	}
	for _, p := range r.Payments {
		resp.Payments = append(resp.Payments, Payment(p))
	}
	return resp
}

type NewJobQueueEntry struct {
	OrderID       kernel.UUID `json:"orderId"`
	ScheduledDate kernel.Date `json:"scheduledDate"`
	QueuePosition *int        `json:"queuePosition"`
	Notes         string      `json:"notes"`
}

type JobQueueEntryPatch struct {
	QueuePosition           *int       `json:"queuePosition"`
	EstimatedCompletionTime *time.Time `json:"estimatedCompletionTime"`
	ActualCompletionTime    *time.Time `json:"actualCompletionTime"`
	Notes                   *string    `json:"notes"`
}

type JobQueueEntry struct {
	ID                      kernel.UUID      `json:"id"`
	OrderID                 kernel.UUID      `json:"orderId"`
	OrderNumber             string           `json:"orderNumber,omitempty"`
	OrderStatus             string           `json:"orderStatus,omitempty"`
	ScheduledDate           kernel.Date      `json:"scheduledDate"`
	QueuePosition           int              `json:"queuePosition"`
	EstimatedCompletionTime *time.Time       `json:"estimatedCompletionTime"`
	ActualCompletionTime    *time.Time       `json:"actualCompletionTime"`
	Notes                   string           `json:"notes"`
	ItemCount               *int             `json:"itemCount,omitempty"`
	TotalWeight             *decimal.Decimal `json:"totalWeight,omitempty"`
}

func entryFromAggregate(e *jobqueue.Entry) JobQueueEntry {
	return JobQueueEntry{
		ID:                      e.ID(),
		OrderID:                 e.OrderID(),
		ScheduledDate:           e.ScheduledDate(),
		QueuePosition:           e.Position(),
		EstimatedCompletionTime: e.EstimatedCompletion(),
		ActualCompletionTime:    e.ActualCompletion(),
		Notes:                   e.Notes(),
	}
}

func entryFromQuery(r queries.JobQueueEntryResponse) JobQueueEntry {
	return JobQueueEntry{
		ID:                      r.ID,
		OrderID:                 r.OrderID,
		OrderNumber:             r.OrderNumber,
		OrderStatus:             r.OrderStatus,
		ScheduledDate:           r.ScheduledDate,
		QueuePosition:           r.QueuePosition,
		EstimatedCompletionTime: r.EstimatedCompletion,
		ActualCompletionTime:    r.ActualCompletion,
		Notes:                   r.Notes,
		ItemCount:               &r.ItemCount,
		TotalWeight:             &r.TotalWeight,
	}
}

type NewWorkOrder struct {
	OrderID    kernel.UUID `json:"orderId"`
	JobQueueID kernel.UUID `json:"jobQueueId"`
	Priority   int         `json:"priority"`
	AssignedTo string      `json:"assignedTo"`
	Notes      string      `json:"notes"`
}

type WorkOrderStepPatch struct {
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
	Notes      *string `json:"notes"`
}

func (p WorkOrderStepPatch) toDomain() workorder.StepPatch {
	patch := workorder.StepPatch{AssignedTo: p.AssignedTo, Notes: p.Notes}
	if p.Status != nil {
		status := workorder.StepStatus(*p.Status)
		patch.Status = &status
	}
	return patch
}

type WorkOrderStep struct {
	ID              kernel.UUID `json:"id"`
	StepType        string      `json:"stepType"`
	SequenceNumber  int         `json:"sequenceNumber"`
	Status          string      `json:"status"`
	AssignedTo      string      `json:"assignedTo"`
	StartTime       *time.Time  `json:"startTime"`
	EndTime         *time.Time  `json:"endTime"`
	DurationMinutes *int        `json:"durationMinutes"`
	Notes           string      `json:"notes"`
}

type WorkOrder struct {
	ID              kernel.UUID     `json:"id"`
	OrderID         kernel.UUID     `json:"orderId"`
	JobQueueID      *kernel.UUID    `json:"jobQueueId"`
	WorkOrderNumber string          `json:"workOrderNumber"`
	Status          string          `json:"status"`
	AssignedTo      string          `json:"assignedTo"`
	Priority        int             `json:"priority"`
	StartTime       *time.Time      `json:"startTime"`
	EndTime         *time.Time      `json:"endTime"`
	CurrentStep     string          `json:"currentStep"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Steps           []WorkOrderStep `json:"steps"`
}

func workOrderFromAggregate(wo *workorder.WorkOrder) WorkOrder {
	resp := WorkOrder{
		ID:              wo.ID(),
		OrderID:         wo.OrderID(),
		WorkOrderNumber: wo.Number(),
		Status:          string(wo.Status()),
		AssignedTo:      wo.AssignedTo(),
		Priority:        wo.Priority(),
		StartTime:       wo.StartTime(),
		EndTime:         wo.EndTime(),
		CurrentStep:     string(wo.CurrentStep()),
		Notes:           wo.Notes(),
		CreatedAt:       wo.CreatedAt(),
		UpdatedAt:       wo.UpdatedAt(),
		Steps:           make([]WorkOrderStep, 0, len(wo.Steps())),
	}
	if !wo.JobQueueID().IsZero() {
		queueID := wo.JobQueueID()
		resp.JobQueueID = &queueID
	}
	for _, s := range wo.Steps() {
		resp.Steps = append(resp.Steps, WorkOrderStep{
			ID:              s.ID(),
			StepType:        string(s.Type()),
			SequenceNumber:  s.Sequence(),
			Status:          string(s.Status()),
			AssignedTo:      s.AssignedTo(),
			StartTime:       s.StartTime(),
			EndTime:         s.EndTime(),
			DurationMinutes: s.DurationMinutes(),
			Notes:           s.Notes(),
		})
	}
	return resp
}

func workOrderFromQuery(r queries.GetWorkOrderQueryResponse) WorkOrder {
	resp := WorkOrder{
		ID:              r.ID,
		OrderID:         r.OrderID,
		JobQueueID:      r.JobQueueID,
		WorkOrderNumber: r.WorkOrderNumber,
		Status:          r.Status,
		AssignedTo:      r.AssignedTo,
		Priority:        r.Priority,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		CurrentStep:     r.CurrentStep,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Steps:           make([]WorkOrderStep, 0, len(r.Steps)),
	}
	for _, s := range r.Steps {
		resp.Steps = append(resp.Steps, WorkOrderStep(s))
	}
	return resp
}

type BatchFailure struct {
	ID    kernel.UUID `json:"id"`
	Error string      `json:"error"`
}

type BatchResult struct {
	Created []WorkOrder    `json:"created"`
	Skipped []kernel.UUID  `json:"skipped"`
	Failed  []BatchFailure `json:"failed"`
}

func batchFromResult(r commands.BatchResult) BatchResult {
	resp := BatchResult{
		Created: make([]WorkOrder, 0, len(r.Created)),
		Skipped: make([]kernel.UUID, 0, len(r.Skipped)),
		Failed:  make([]BatchFailure, 0, len(r.Failed)),
	}
	for _, wo := range r.Created {
		resp.Created = append(resp.Created, workOrderFromAggregate(wo))
	}
	resp.Skipped = append(resp.Skipped, r.Skipped...)
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, BatchFailure{ID: f.ID, Error: f.Err.Error()})
	}
	return resp
}
