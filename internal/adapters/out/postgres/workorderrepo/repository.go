package workorderrepo

import (
	"context"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkOrderRepository implements ports.WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db *gorm.DB
}

func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// Add inserts the work order and its steps.
func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("orderId", aggregate.OrderID().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the work order row with SELECT ... FOR UPDATE. Steps are only
// written together with their work order, so the parent lock covers them.
func (r *GormWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormWorkOrderRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WorkOrderDTO
	err := db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("sequence_number") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("workOrderId", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormWorkOrderRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	return count > 0, err
}

// Update writes the work order row and, when step is not nil, that step's row.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder, step *workorder.Step) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WorkOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"assigned_to":  dto.AssignedTo,
			"priority":     dto.Priority,
			"start_time":   dto.StartTime,
			"end_time":     dto.EndTime,
			"current_step": dto.CurrentStep,
			"notes":        dto.Notes,
			"updated_at":   dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workOrderId", aggregate.ID().String())
	}

	if step == nil {
		return nil
	}
	if err := step.Validate(); err != nil {
		return err
	}
	stepDTO := stepFromDomain(step)
	result = r.db.WithContext(ctx).
		Model(&StepDTO{}).
		Where("id = ? AND work_order_id = ?", stepDTO.ID, dto.ID).
		Updates(map[string]any{
			"status":           stepDTO.Status,
			"assigned_to":      stepDTO.AssignedTo,
			"start_time":       stepDTO.StartTime,
			"end_time":         stepDTO.EndTime,
			"duration_minutes": stepDTO.DurationMinutes,
			"notes":            stepDTO.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stepId", step.ID().String())
	}
	return nil
}

// Delete removes the steps, then the work order. Run it inside a transaction.
func (r *GormWorkOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Delete(&StepDTO{}, "work_order_id = ?", id.Bytes()).Error; err != nil {
		return err
	}
	result := db.Delete(&WorkOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workOrderId", id.String())
	}
	return nil
}
