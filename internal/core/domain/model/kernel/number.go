package kernel

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// NumberPrefix selects one of the human-readable business number series. Every series
// has its own monotonic counter per day.
type NumberPrefix string

const (
	// OrderNumberPrefix numbers orders: ORD-20261016-00001.
	OrderNumberPrefix NumberPrefix = "ORD"
	// WorkOrderNumberPrefix numbers work orders: WO-20261016-00001.
	WorkOrderNumberPrefix NumberPrefix = "WO"
	// PaymentReferencePrefix numbers intake payments: PAY-20261016-00001.
	PaymentReferencePrefix NumberPrefix = "PAY"
)

// FormatNumber renders prefix-yyyymmdd-NNNNN. Sequences beyond 99999 keep all their
// digits instead of wrapping.
func FormatNumber(prefix NumberPrefix, day Date, seq int64) (string, error) {
	if prefix == "" {
		return "", errs.NewValueIsRequiredError("number prefix")
	}
	if err := day.Validate(); err != nil {
		return "", err
	}
	if seq <= 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("%d is not greater than 0", seq))
	}
	return fmt.Sprintf("%s-%s-%05d", prefix, day.Compact(), seq), nil
}
