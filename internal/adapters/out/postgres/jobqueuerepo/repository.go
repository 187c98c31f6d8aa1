package jobqueuerepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// lockNamespace is the first key of the per-day advisory lock; the second is yyyymmdd.
const lockNamespace int32 = 0x4a51

// GormJobQueueRepository implements ports.JobQueueRepository using GORM.
type GormJobQueueRepository struct {
	db *gorm.DB
}

func NewGormJobQueueRepository(db *gorm.DB) *GormJobQueueRepository {
	return &GormJobQueueRepository{db: db}
}

// LockDate takes a transaction-scoped advisory lock for day. Outside a transaction the
// lock is released as soon as the statement ends.
func (r *GormJobQueueRepository) LockDate(ctx context.Context, day kernel.Date) error {
	if err := day.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?, ?)", lockNamespace, int32(day.Key())).Error
}

func (r *GormJobQueueRepository) Get(ctx context.Context, id kernel.UUID) (*jobqueue.Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto EntryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("jobQueueId", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormJobQueueRepository) Exists(ctx context.Context, orderID kernel.UUID, day kernel.Date) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("order_id = ? AND scheduled_date = ?", orderID.Bytes(), day.Time()).
		Count(&count).Error
	return count > 0, err
}

func (r *GormJobQueueRepository) Positions(ctx context.Context, day kernel.Date) ([]int, error) {
	positions := make([]int, 0)
	err := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("scheduled_date = ?", day.Time()).
		Order("queue_position").
		Pluck("queue_position", &positions).Error
	return positions, err
}

// Shift moves the day's entries in [From, To] by Delta in a single statement.
func (r *GormJobQueueRepository) Shift(ctx context.Context, day kernel.Date, shift services.Shift) error {
	if shift.Delta == 0 || shift.From > shift.To {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("scheduled_date = ? AND queue_position BETWEEN ? AND ?", day.Time(), shift.From, shift.To).
		Updates(map[string]any{
			"queue_position": gorm.Expr("queue_position + ?", shift.Delta),
			"updated_at":     time.Now().UTC(),
		}).Error
}

func (r *GormJobQueueRepository) Add(ctx context.Context, entry *jobqueue.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("orderId", entry.OrderID().String()+" on "+entry.ScheduledDate().String(), err)
		}
		return err
	}
	return nil
}

func (r *GormJobQueueRepository) Update(ctx context.Context, entry *jobqueue.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id = ?", dto.ID).
		Select("queue_position", "estimated_completion_time", "actual_completion_time", "notes", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("jobQueueId", entry.ID().String())
	}
	return nil
}

func (r *GormJobQueueRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&EntryDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("jobQueueId", id.String())
	}
	return nil
}
