package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Metric is an optional numeric value. The zero value is "no value", which is
// distinct from a present 0.
type Metric struct {
	value float64
	valid bool
}

// Some returns a present metric.
func Some(v float64) Metric { return Metric{value: v, valid: true} }

// None returns a missing metric.
func None() Metric { return Metric{} }

// Valid reports whether the metric carries a value.
func (m Metric) Valid() bool { return m.valid }

// Value returns the value and whether it is present.
func (m Metric) Value() (float64, bool) { return m.value, m.valid }

// Or returns the value, or def when missing.
func (m Metric) Or(def float64) float64 {
	if !m.valid {
		return def
	}
	return m.value
}

// String renders the value or "n/a".
func (m Metric) String() string {
	if !m.valid {
		return "n/a"
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// MarshalJSON encodes a missing metric as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything that is
// not numeric decodes to a missing metric rather than an error.
func (m *Metric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = None()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*m = None()
			return nil
		}
		*m = ParseMetric(s)
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*m = None()
		return nil
	}
	*m = Some(v)
	return nil
}

// ParseMetric parses a textual value; blanks and non-numeric text are missing.
func ParseMetric(s string) Metric {
	s = strings.TrimSpace(s)
	if s == "" {
		return None()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return None()
	}
	return Some(v)
}
