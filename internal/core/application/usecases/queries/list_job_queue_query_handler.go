package queries

import (
	"context"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListJobQueueQueryHandler struct {
	db *gorm.DB
}

func NewListJobQueueQueryHandler(db *gorm.DB) ListJobQueueQueryHandler {
	return ListJobQueueQueryHandler{db: db}
}

// Handle returns the day's entries by ascending position. Gaps left by removed entries
// are returned as they are.
func (h ListJobQueueQueryHandler) Handle(ctx context.Context, query ListJobQueueQuery) ([]JobQueueEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT
			q.id,
			q.order_id,
			o.order_number,
			o.status,
			q.scheduled_date,
			q.queue_position,
			q.estimated_completion_time,
			q.actual_completion_time,
			q.notes,
			COUNT(i.id) AS item_count,
			o.total_weight
		FROM daily_job_queues q
		JOIN orders o ON o.id = q.order_id
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE q.scheduled_date = ?`)
	args := []any{query.Date().Time()}
	if status := query.Status(); status != nil {
		sb.WriteString(` AND o.status = ?`)
		args = append(args, status.String())
	}
	sb.WriteString(`
		GROUP BY q.id, o.id
		ORDER BY q.queue_position, q.created_at`)

	rows, err := h.db.WithContext(ctx).Raw(sb.String(), args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]JobQueueEntryResponse, 0)
	for rows.Next() {
		var (
			entry         JobQueueEntryResponse
			id            uuid.UUID
			orderID       uuid.UUID
			scheduledDate time.Time
		)
		err = rows.Scan(
			&id,
			&orderID,
			&entry.OrderNumber,
			&entry.OrderStatus,
			&scheduledDate,
			&entry.QueuePosition,
			&entry.EstimatedCompletion,
			&entry.ActualCompletion,
			&entry.Notes,
			&entry.ItemCount,
			&entry.TotalWeight,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		entry.ScheduledDate = kernel.DateOf(scheduledDate)
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
