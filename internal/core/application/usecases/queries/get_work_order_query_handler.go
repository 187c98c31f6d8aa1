package queries

import (
	"context"
	"database/sql"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetWorkOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetWorkOrderQueryHandler(db *gorm.DB) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{db: db}
}

func (h GetWorkOrderQueryHandler) Handle(ctx context.Context, query GetWorkOrderQuery) (GetWorkOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.workOrder(db, query.WorkOrderID())
	if err != nil {
		return GetWorkOrderQueryResponse{}, err
	}
	if resp.Steps, err = h.steps(db, query.WorkOrderID()); err != nil {
		return GetWorkOrderQueryResponse{}, err
	}
	return resp, nil
}

func (h GetWorkOrderQueryHandler) workOrder(db *gorm.DB, workOrderID kernel.UUID) (GetWorkOrderQueryResponse, error) {
	var (
		resp       GetWorkOrderQueryResponse
		id         uuid.UUID
		orderID    uuid.UUID
		jobQueueID uuid.NullUUID
	)
	err := db.Raw(`
		SELECT
			id,
			order_id,
			job_queue_id,
			work_order_number,
			status,
			assigned_to,
			priority,
			start_time,
			end_time,
			current_step,
			notes,
			created_at,
			updated_at
		FROM work_orders
		WHERE id = ?
	`, workOrderID.Bytes()).Row().Scan(
		&id,
		&orderID,
		&jobQueueID,
		&resp.WorkOrderNumber,
		&resp.Status,
		&resp.AssignedTo,
		&resp.Priority,
		&resp.StartTime,
		&resp.EndTime,
		&resp.CurrentStep,
		&resp.Notes,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("workOrderId", workOrderID.String())
		}
		return resp, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return resp, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return resp, err
	}
	if jobQueueID.Valid {
		queueID, idErr := kernel.UUIDFromBytes(jobQueueID.UUID[:])
		if idErr != nil {
			return resp, idErr
		}
		resp.JobQueueID = &queueID
	}
	return resp, nil
}

func (h GetWorkOrderQueryHandler) steps(db *gorm.DB, workOrderID kernel.UUID) ([]WorkOrderStepResponse, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			step_type,
			sequence_number,
			status,
			assigned_to,
			start_time,
			end_time,
			duration_minutes,
			notes
		FROM work_order_steps
		WHERE work_order_id = ?
		ORDER BY sequence_number
	`, workOrderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	steps := make([]WorkOrderStepResponse, 0, 6)
	for rows.Next() {
		var (
			step WorkOrderStepResponse
			id   uuid.UUID
		)
		err = rows.Scan(
			&id,
			&step.StepType,
			&step.SequenceNumber,
			&step.Status,
			&step.AssignedTo,
			&step.StartTime,
			&step.EndTime,
			&step.DurationMinutes,
			&step.Notes,
		)
		if err != nil {
			return nil, err
		}
		if step.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}
