package jobqueue

import (
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	DayStartHour = 8
	SlotDuration = 30 * time.Minute
	PerItem      = 5 * time.Minute
	PerKilogram  = 2 * time.Minute
)

// Workload is what the ETA needs to know about the queued order.
type Workload struct {
	ItemCount int
	Weight    decimal.Decimal
}

// EstimateCompletion returns
//
//	08:00 on day in loc + (position-1)*30m + items*5m + ceil(weight)*2m
//
// Positions below 1 count as 1 and negative workloads count as zero.
func EstimateCompletion(day kernel.Date, position int, load Workload, loc *time.Location) time.Time {
	eta := day.At(DayStartHour, 0, loc)
	if position > 1 {
		eta = eta.Add(time.Duration(position-1) * SlotDuration)
	}
	if load.ItemCount > 0 {
		eta = eta.Add(time.Duration(load.ItemCount) * PerItem)
	}
	if kg := load.Weight.Ceil(); kg.IsPositive() {
		eta = eta.Add(time.Duration(kg.IntPart()) * PerKilogram)
	}
	return eta
}
