package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status represents the lifecycle state of a laundry order.
//
// Orders start as New. Work-order events move them to Processing and, once every
// processing step is done, to Ready. Delivered and Cancelled are set by collaborators
// outside this service and are final:
//
//	New ──> Processing ──> Ready ──> Delivered
//	 │
//	 └──> Cancelled
//
// The intermediate Washing, Drying and Folding values exist for front-desk tooling that
// tracks progress at a coarser grain than work-order steps.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	New
	Processing
	Washing
	Drying
	Folding
	Ready
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		New:        "NEW",
		Processing: "PROCESSING",
		Washing:    "WASHING",
		Drying:     "DRYING",
		Folding:    "FOLDING",
		Ready:      "READY",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus converts the persisted/wire form ("NEW", "READY", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that s is one of the defined statuses other than Unknown.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether no further transitions are allowed.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// Process returns Processing when the order may enter processing.
//
// Every non-final status may move to Processing: a work order that is removed and
// created again puts an already processing or ready order back into processing.
func (s Status) Process() (Status, error) {
	if err := s.validateOpen("process"); err != nil {
		return Unknown, err
	}
	return Processing, nil
}

// Ready returns Ready when processing may be reported as finished.
func (s Status) Ready() (Status, error) {
	if err := s.validateOpen("mark ready"); err != nil {
		return Unknown, err
	}
	return Ready, nil
}

func (s Status) validateOpen(action string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot %s an order in %s status", action, s),
		)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
