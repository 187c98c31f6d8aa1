package pricing

import (
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Order-level maxima, the largest values numeric(14,2) and numeric(10,3) hold.
var (
	MaxTotal       = decimal.RequireFromString("999999999999.99")
	MaxTotalWeight = decimal.RequireFromString("9999999.999")
)

// Calculator computes order totals from normalized lines.
type Calculator struct{}

// NewCalculator returns a Calculator.
func NewCalculator() Calculator {
	return Calculator{}
}

// Total sums the line subtotals. A non-nil override wins unconditionally, rounded to
// cents; callers use it for negotiated prices.
func (Calculator) Total(lines []Line, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return override.Round(moneyPlaces)
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalWeight sums the effective kilograms of weight-based lines only.
func (Calculator) TotalWeight(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if w, ok := l.(Weight); ok {
			total = total.Add(w.Kilograms())
		}
	}
	return total
}

// CheckTotals rejects totals the order columns cannot store.
func (Calculator) CheckTotals(total, weight decimal.Decimal) error {
	if total.GreaterThan(MaxTotal) {
		return errs.NewValueIsOutOfRangeError("totalAmount", total, decimal.Zero, MaxTotal)
	}
	if weight.GreaterThan(MaxTotalWeight) {
		return errs.NewValueIsOutOfRangeError("totalWeight", weight, decimal.Zero, MaxTotalWeight)
	}
	return nil
}
