// Package jobqueuerepo persists daily job queue entries.
package jobqueuerepo

import (
	"time"

	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO is a daily_job_queues row. Uniqueness of (scheduled_date, queue_position)
// is a deferred constraint created by postgres.Migrate, so a shift may pass through
// duplicate positions inside its transaction.
type EntryDTO struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID                 uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_job_queues_order_date"`
	ScheduledDate           time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_job_queues_order_date;index"`
	QueuePosition           int       `gorm:"not null"`
	EstimatedCompletionTime *time.Time
	ActualCompletionTime    *time.Time
	Notes                   string    `gorm:"type:text"`
	CreatedAt               time.Time `gorm:"not null"`
	UpdatedAt               time.Time `gorm:"not null"`
}

func (EntryDTO) TableName() string {
	return "daily_job_queues"
}

func fromDomain(e *jobqueue.Entry) EntryDTO {
	return EntryDTO{
		ID:                      e.ID().Bytes(),
		OrderID:                 e.OrderID().Bytes(),
		ScheduledDate:           e.ScheduledDate().Time(),
		QueuePosition:           e.Position(),
		EstimatedCompletionTime: e.EstimatedCompletion(),
		ActualCompletionTime:    e.ActualCompletion(),
		Notes:                   e.Notes(),
		CreatedAt:               e.CreatedAt(),
		UpdatedAt:               e.UpdatedAt(),
	}
}

func toDomain(dto EntryDTO) (*jobqueue.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return jobqueue.RestoreEntry(jobqueue.EntryState{
		ID:                  id,
		OrderID:             orderID,
		ScheduledDate:       kernel.DateOf(dto.ScheduledDate),
		Position:            dto.QueuePosition,
		EstimatedCompletion: dto.EstimatedCompletionTime,
		ActualCompletion:    dto.ActualCompletionTime,
		Notes:               dto.Notes,
		CreatedAt:           dto.CreatedAt,
		UpdatedAt:           dto.UpdatedAt,
	})
}
