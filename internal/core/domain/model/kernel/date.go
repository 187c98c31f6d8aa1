package kernel

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when validating a zero Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date must be created via NewDate, DateOf or ParseDate")

// Date is a calendar day without a time of day or zone. Queue scheduling and the
// per-day number counters are keyed by Date so that "the 16th" means the same thing no
// matter which zone a request arrives from.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate validates the components; 2026-02-30 is rejected rather than normalized.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, errs.NewValueIsInvalidErrorWithCause(
			"date",
			fmt.Errorf("%04d-%02d-%02d is not a calendar day", year, month, day),
		)
	}
	return Date{year: year, month: month, day: day}, nil
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses the ISO form "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return DateOf(t), nil
}

// Validate returns ErrDateIsNotConstructed for the zero value.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Equal reports whether both values denote the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// At returns the instant at hour:minute of this day in loc.
func (d Date) At(hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, hour, minute, 0, 0, loc)
}

// Time returns midnight UTC of this day, the representation used for `date` columns.
func (d Date) Time() time.Time {
	return d.At(0, 0, time.UTC)
}

// Key returns the day as the integer yyyymmdd, used for advisory lock keys and
// number sequences.
func (d Date) Key() int {
	return d.year*10000 + int(d.month)*100 + d.day
}

// Compact returns the day as "yyyymmdd".
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.year, d.month, d.day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
