package pricing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// RawNumber is a numeric field exactly as a client supplied it. It distinguishes
// "absent" from "present but zero or garbage", which matters for the weight ?? quantity
// fallback chain.
type RawNumber struct {
	text    string
	present bool
}

// NumberOf wraps a present raw value such as "2,5" or "3".
func NumberOf(text string) RawNumber {
	return RawNumber{text: text, present: true}
}

// NumberFromDecimal wraps an already numeric value.
func NumberFromDecimal(d decimal.Decimal) RawNumber {
	return RawNumber{text: d.String(), present: true}
}

// IsPresent reports whether the field was supplied at all.
func (n RawNumber) IsPresent() bool {
	return n.present
}

// Decimal parses the raw text; absent and invalid values yield zero.
func (n RawNumber) Decimal() decimal.Decimal {
	if !n.present {
		return decimal.Zero
	}
	return ParseNumber(n.text)
}

// String returns the raw text as received.
func (n RawNumber) String() string {
	return n.text
}

// UnmarshalJSON accepts numbers, strings and null. Any other JSON value is recorded as
// present but unparsable instead of failing the whole request.
func (n *RawNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = RawNumber{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = NumberOf("")
			return nil //nolint:nilerr // malformed strings degrade to zero
		}
		*n = NumberOf(s)
	default:
		*n = NumberOf(string(data))
	}
	return nil
}

// MarshalJSON writes the parsed value, or null when absent.
func (n RawNumber) MarshalJSON() ([]byte, error) {
	if !n.present {
		return []byte("null"), nil
	}
	return []byte(n.Decimal().String()), nil
}

const (
	maxNumberLength   = 64
	maxNumberExponent = 32
)

// ParseNumber parses s leniently and never fails:
//   - surrounding and inner spaces are ignored
//   - a lone comma is a decimal separator: "2,5" is 2.5
//   - when both separators appear the last one is the decimal separator:
//     "1.234,5" and "1,234.5" are both 1234.5
//   - repeated identical separators are grouping: "1.234.567" is 1234567
//
// Empty or unparsable input returns zero, and so does input longer than
// maxNumberLength or with a decimal exponent beyond maxNumberExponent.
func ParseNumber(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" || len(s) > maxNumberLength {
		return decimal.Zero
	}

	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dot >= 0 && strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp > maxNumberExponent || exp < -maxNumberExponent {
		return decimal.Zero
	}
	return d
}
