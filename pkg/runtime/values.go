package runtime

import (
	"fmt"
	"math"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindChar
	KindNull
	KindInteger
	KindFloat
	KindClassInstance
	KindClosure
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindClassInstance:
		return "class_instance"
	case KindClosure:
		return "closure"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. A nil Value means
// "no value"; the language's null is the Null singleton.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// Null is the distinguished null value.
var Null Value = NullValue{}

// IsNull reports whether v is the null singleton.
func IsNull(v Value) bool {
	_, ok := v.(NullValue)
	return ok
}

// Integer sub-types: 16-, 32- and 64-bit signed.
type IntegerType string

const (
	IntegerI16 IntegerType = "i16"
	IntegerI32 IntegerType = "i32"
	IntegerI64 IntegerType = "i64"
)

// IntegerValue holds an integer already wrapped to the width of its type.
type IntegerValue struct {
	Val        int64
	TypeSuffix IntegerType
}

func (v IntegerValue) Kind() Kind { return KindInteger }

// NewInteger wraps val to the width of typ.
func NewInteger(val int64, typ IntegerType) IntegerValue {
	switch typ {
	case IntegerI16:
		val = int64(int16(val))
	case IntegerI32:
		val = int64(int32(val))
	case IntegerI64:
	default:
		typ = IntegerI32
		val = int64(int32(val))
	}
	return IntegerValue{Val: val, TypeSuffix: typ}
}

// Float sub-types.
type FloatType string

const (
	FloatF32 FloatType = "f32"
	FloatF64 FloatType = "f64"
)

// FloatValue holds a float already rounded to the precision of its type.
type FloatValue struct {
	Val        float64
	TypeSuffix FloatType
}

func (v FloatValue) Kind() Kind { return KindFloat }

func NewFloat(val float64, typ FloatType) FloatValue {
	if typ != FloatF64 {
		typ = FloatF32
		if !math.IsInf(val, 0) && !math.IsNaN(val) {
			val = float64(float32(val))
		}
	}
	return FloatValue{Val: val, TypeSuffix: typ}
}
