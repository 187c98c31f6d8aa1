// Package workorderrepo persists work orders together with their steps.
package workorderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

// WorkOrderDTO is a work_orders row. The unique index on order_id enforces one work
// order per order.
type WorkOrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	JobQueueID      *uuid.UUID `gorm:"type:uuid;index"`
	WorkOrderNumber string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	Status          string     `gorm:"type:varchar(20);not null;index"`
	AssignedTo      string     `gorm:"type:varchar(255)"`
	Priority        int        `gorm:"not null"`
	StartTime       *time.Time
	EndTime         *time.Time
	CurrentStep     string    `gorm:"type:varchar(20);not null"`
	Notes           string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	Steps []StepDTO `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

// StepDTO is a work_order_steps row.
type StepDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkOrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_work_order_steps_sequence"`
	StepType        string    `gorm:"type:varchar(20);not null"`
	SequenceNumber  int       `gorm:"not null;uniqueIndex:idx_work_order_steps_sequence"`
	Status          string    `gorm:"type:varchar(20);not null"`
	AssignedTo      string    `gorm:"type:varchar(255)"`
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Notes           string `gorm:"type:text"`
}

func (StepDTO) TableName() string {
	return "work_order_steps"
}

func fromDomain(wo *workorder.WorkOrder) WorkOrderDTO {
	id := wo.ID().Bytes()
	steps := make([]StepDTO, 0, len(wo.Steps()))
	for _, s := range wo.Steps() {
		steps = append(steps, stepFromDomain(s))
	}

	var jobQueueID *uuid.UUID
	if !wo.JobQueueID().IsZero() {
		raw := wo.JobQueueID().Bytes()
		jobQueueID = &raw
	}

	return WorkOrderDTO{
		ID:              id,
		OrderID:         wo.OrderID().Bytes(),
		JobQueueID:      jobQueueID,
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
		Steps:           steps,
	}
}

func stepFromDomain(s *workorder.Step) StepDTO {
	return StepDTO{
		ID:              s.ID().Bytes(),
		WorkOrderID:     s.WorkOrderID().Bytes(),
		StepType:        string(s.Type()),
		SequenceNumber:  s.Sequence(),
		Status:          string(s.Status()),
		AssignedTo:      s.AssignedTo(),
		StartTime:       s.StartTime(),
		EndTime:         s.EndTime(),
		DurationMinutes: s.DurationMinutes(),
		Notes:           s.Notes(),
	}
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	var jobQueueID kernel.UUID
	if dto.JobQueueID != nil {
		if jobQueueID, err = kernel.UUIDFromBytes((*dto.JobQueueID)[:]); err != nil {
			return nil, err
		}
	}

	steps := make([]*workorder.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		step, stepErr := stepToDomain(stepDTO)
		if stepErr != nil {
			return nil, stepErr
		}
		steps = append(steps, step)
	}

	return workorder.RestoreWorkOrder(workorder.State{
		ID:          id,
		OrderID:     orderID,
		JobQueueID:  jobQueueID,
		Number:      dto.WorkOrderNumber,
		Status:      workorder.Status(dto.Status),
		AssignedTo:  dto.AssignedTo,
		Priority:    dto.Priority,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		CurrentStep: workorder.StepType(dto.CurrentStep),
		Notes:       dto.Notes,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		Steps:       steps,
	})
}

func stepToDomain(dto StepDTO) (*workorder.Step, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}
	return workorder.RestoreStep(workorder.StepState{
		ID:              id,
		WorkOrderID:     workOrderID,
		Type:            workorder.StepType(dto.StepType),
		Sequence:        dto.SequenceNumber,
		Status:          workorder.StepStatus(dto.Status),
		AssignedTo:      dto.AssignedTo,
		StartTime:       dto.StartTime,
		EndTime:         dto.EndTime,
		DurationMinutes: dto.DurationMinutes,
		Notes:           dto.Notes,
	})
}
