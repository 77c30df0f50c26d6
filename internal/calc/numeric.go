package calc

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a form-entered numeric field. Operators type into these fields
// continuously, so a half-typed or cleared value is normal state, not an
// error: anything that does not parse as a number is carried as invalid and
// contributes 0 to every calculation.
type Number struct {
	value float64
	valid bool
	set   bool
}

// N returns a valid Number holding v.
func N(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{set: true}
	}
	return Number{value: v, valid: true, set: true}
}

// FromPtr converts a nullable stored value into a Number.
func FromPtr(v *float64) Number {
	if v == nil {
		return Number{}
	}
	return N(*v)
}

// Float returns the held value, or 0 when the field is empty or malformed.
func (n Number) Float() float64 {
	if !n.valid {
		return 0
	}
	return n.value
}

// Valid reports whether the field held a parseable number.
func (n Number) Valid() bool {
	return n.valid
}

// Set reports whether the field appeared in the decoded payload at all,
// parseable or not. Fields with a document-level default only fall back
// when the payload never mentioned them.
func (n Number) Set() bool {
	return n.set
}

// Ptr returns the value for nullable storage, nil when invalid.
func (n Number) Ptr() *float64 {
	if !n.valid {
		return nil
	}
	v := n.value
	return &v
}

// UnmarshalJSON accepts JSON numbers, numeric strings, empty strings and
// null. Anything else degrades to the invalid state without erroring.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*n = Number{}
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			*n = Number{set: true}
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = Number{set: true}
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			*n = Number{set: true}
			return nil
		}
		*n = Number{value: parsed, valid: true, set: true}
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		*n = Number{set: true}
		return nil
	}
	*n = N(f)
	return nil
}

// MarshalJSON emits the value, or null for empty fields.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Bool is a form toggle that may be absent from the payload. The two
// document kinds disagree on what an absent toggle means, so callers
// resolve it with Or instead of reading a raw value.
type Bool struct {
	value bool
	set   bool
}

// B returns a set Bool holding v.
func B(v bool) Bool {
	return Bool{value: v, set: true}
}

// Or returns the held value, or def when the field was absent.
func (b Bool) Or(def bool) bool {
	if !b.set {
		return def
	}
	return b.value
}

// Set reports whether the field appeared in the decoded payload.
func (b Bool) Set() bool {
	return b.set
}

// UnmarshalJSON accepts JSON booleans. Null and anything malformed degrade
// to the absent state without erroring.
func (b *Bool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*b = Bool{}
		return nil
	}
	var v bool
	if err := json.Unmarshal(trimmed, &v); err != nil {
		*b = Bool{}
		return nil
	}
	*b = Bool{value: v, set: true}
	return nil
}

// MarshalJSON emits the value, or null for an absent toggle.
func (b Bool) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	return json.Marshal(b.value)
}

// Round2 rounds to 2 decimal places with ties going toward positive
// infinity, matching how the totals have always been rounded on printed
// documents. Round2(-12.5/100) is -0.12, not -0.13.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x*100+0.5) / 100
}
