package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueType uint8

const (
	ValueNilType ValueType = iota
	ValueBoolType
	ValueFloatType
	ValueStringType
)

var valueTypeNames = [...]string{
	ValueNilType:    "nil",
	ValueBoolType:   "boolean",
	ValueFloatType:  "number",
	ValueStringType: "string",
}

// String implements fmt.Stringer.
func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return fmt.Sprintf("ValueType(%d)", uint8(t))
}

// Value is a dynamically typed runtime value.
// String returns the form print writes.
type Value interface {
	Type() ValueType
	fmt.Stringer
}

type (
	ValueNil    struct{}
	ValueBool   bool
	ValueFloat  float64
	ValueString string
)

var NilValue = ValueNil{}

// Type implements Value.
func (v ValueNil) Type() ValueType {
	return ValueNilType
}

// Type implements Value.
func (v ValueBool) Type() ValueType {
	return ValueBoolType
}

// Type implements Value.
func (v ValueFloat) Type() ValueType {
	return ValueFloatType
}

// Type implements Value.
func (v ValueString) Type() ValueType {
	return ValueStringType
}

// String implements fmt.Stringer.
func (v ValueNil) String() string {
	return "nil"
}

// String implements fmt.Stringer.
func (v ValueBool) String() string {
	return strconv.FormatBool(bool(v))
}

// String implements fmt.Stringer.
// Integral numbers print without a fractional part.
func (v ValueFloat) String() string {
	f := float64(v)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}

	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		return exponentForm(f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// exponentForm writes f as 1.5e+21 or 1e-7: shortest mantissa, signed exponent
// without leading zeros.
func exponentForm(f float64) string {
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// String implements fmt.Stringer.
func (v ValueString) String() string {
	return string(v)
}

// GoString implements fmt.GoStringer.
func (v ValueString) GoString() string {
	return strconv.Quote(string(v))
}

var (
	_ Value = ValueNil{}
	_ Value = ValueBool(false)
	_ Value = ValueFloat(0)
	_ Value = ValueString("")
)
