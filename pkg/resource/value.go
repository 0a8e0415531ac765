package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidValue is returned when a raw value falls outside the
// label-value domain (string, bool, integer, floating-point).
var ErrInvalidValue = errors.New("value outside label-value domain")

// Kind identifies the type held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindFloat
)

// Value is a single label value. The domain is closed: string, bool,
// int64 or float64. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	bl   bool
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// BoolValue creates a bool Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, bl: b}
}

// IntValue creates an int64 Value.
func IntValue(i int64) Value {
	return Value{kind: KindInt, num: i}
}

// FloatValue creates a float64 Value.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, flt: f}
}

// FromRaw converts an untyped value, as produced by YAML or JSON
// decoding, into a Value. Anything outside the label-value domain is
// rejected with ErrInvalidValue.
func FromRaw(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case int32:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case float32:
		return FloatValue(float64(v)), nil
	case float64:
		return FloatValue(v), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrInvalidValue, raw)
	}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string held by a KindString value.
func (v Value) Str() string { return v.str }

// Bool returns the bool held by a KindBool value.
func (v Value) Bool() bool { return v.bl }

// Int returns the int64 held by a KindInt value.
func (v Value) Int() int64 { return v.num }

// Float returns the float64 held by a KindFloat value.
func (v Value) Float() float64 { return v.flt }

// Emit returns the canonical text form of the value.
func (v Value) Emit() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.bl)
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	default:
		return v.str
	}
}

// isEmptyString reports whether v is the empty string, the one case
// where Merge lets the right operand override the left.
func (v Value) isEmptyString() bool {
	return v.kind == KindString && v.str == ""
}

// MarshalJSON encodes the value as its underlying type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.bl)
	case KindInt:
		return json.Marshal(v.num)
	case KindFloat:
		return json.Marshal(v.flt)
	default:
		return json.Marshal(v.str)
	}
}
