package models

import (
	"encoding/json"
	"fmt"
)

// Ratio is a division result that may be undefined. It replaces raw
// NaN/Inf values anywhere a metric can divide by zero, so results stay
// safely serializable. An undefined Ratio marshals to JSON null.
type Ratio struct {
	value   float64
	defined bool
}

// FiniteRatio returns a defined ratio with the given value.
func FiniteRatio(v float64) Ratio {
	return Ratio{value: v, defined: true}
}

// UndefinedRatio returns the "undefined/infinite" sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// DivideRatio returns numerator/denominator, or the undefined sentinel
// when the denominator is zero.
func DivideRatio(numerator, denominator float64) Ratio {
	if denominator == 0 {
		return UndefinedRatio()
	}
	return FiniteRatio(numerator / denominator)
}

// Defined reports whether the ratio holds a finite value.
func (r Ratio) Defined() bool { return r.defined }

// Value returns the finite value and whether it is defined.
func (r Ratio) Value() (float64, bool) { return r.value, r.defined }

// Or returns the finite value, or fallback when undefined.
func (r Ratio) Or(fallback float64) float64 {
	if r.defined {
		return r.value
	}
	return fallback
}

// String renders the value, or "∞" for the undefined sentinel.
func (r Ratio) String() string {
	if !r.defined {
		return "∞"
	}
	return fmt.Sprintf("%.2f", r.value)
}

// MarshalJSON encodes a defined ratio as a number and an undefined one
// as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as the undefined sentinel.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UndefinedRatio()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = FiniteRatio(v)
	return nil
}
