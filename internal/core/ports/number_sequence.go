package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
)

// NumberSequence hands out per-day counters for business numbers.
type NumberSequence interface {
	// Next returns the next value of the prefix's counter for day, starting at 1.
	// Values are never handed out twice, even across concurrent transactions.
	Next(ctx context.Context, prefix kernel.NumberPrefix, day kernel.Date) (int64, error)
}
