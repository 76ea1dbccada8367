package semantic

import "strings"

// Type represents a PlayScript static type.
type Type interface {
	TypeName() string
}

type PrimitiveKind string

const (
	PrimitiveShort   PrimitiveKind = "short"
	PrimitiveInt     PrimitiveKind = "int"
	PrimitiveLong    PrimitiveKind = "long"
	PrimitiveFloat   PrimitiveKind = "float"
	PrimitiveDouble  PrimitiveKind = "double"
	PrimitiveBoolean PrimitiveKind = "boolean"
	PrimitiveChar    PrimitiveKind = "char"
	PrimitiveString  PrimitiveKind = "String"
	PrimitiveVoid    PrimitiveKind = "void"
	PrimitiveNull    PrimitiveKind = "null"
	PrimitiveUnknown PrimitiveKind = "unknown"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) TypeName() string { return string(p.Kind) }

var (
	Short   Type = PrimitiveType{Kind: PrimitiveShort}
	Int     Type = PrimitiveType{Kind: PrimitiveInt}
	Long    Type = PrimitiveType{Kind: PrimitiveLong}
	Float   Type = PrimitiveType{Kind: PrimitiveFloat}
	Double  Type = PrimitiveType{Kind: PrimitiveDouble}
	Boolean Type = PrimitiveType{Kind: PrimitiveBoolean}
	Char    Type = PrimitiveType{Kind: PrimitiveChar}
	String  Type = PrimitiveType{Kind: PrimitiveString}
	Void    Type = PrimitiveType{Kind: PrimitiveVoid}
	Null    Type = PrimitiveType{Kind: PrimitiveNull}
	Unknown Type = PrimitiveType{Kind: PrimitiveUnknown}
)

// numericRank orders the numeric types by width; promotion picks the wider.
var numericRank = map[PrimitiveKind]int{
	PrimitiveShort:  1,
	PrimitiveInt:    2,
	PrimitiveLong:   3,
	PrimitiveFloat:  4,
	PrimitiveDouble: 5,
}

// PrimitiveByName maps a type reference name to its primitive type.
func PrimitiveByName(name string) (Type, bool) {
	switch name {
	case "short":
		return Short, true
	case "int":
		return Int, true
	case "long":
		return Long, true
	case "float":
		return Float, true
	case "double":
		return Double, true
	case "boolean":
		return Boolean, true
	case "char":
		return Char, true
	case "String", "string":
		return String, true
	case "void":
		return Void, true
	default:
		return nil, false
	}
}

// IsNumeric reports whether t is one of the five numeric primitives.
func IsNumeric(t Type) bool {
	p, ok := t.(PrimitiveType)
	if !ok {
		return false
	}
	_, ok = numericRank[p.Kind]
	return ok
}

// IsIntegral reports whether t is short, int or long.
func IsIntegral(t Type) bool {
	p, ok := t.(PrimitiveType)
	if !ok {
		return false
	}
	return p.Kind == PrimitiveShort || p.Kind == PrimitiveInt || p.Kind == PrimitiveLong
}

// Promote widens two operand types to the type used for comparison: String
// wins, then the wider numeric type. A non-numeric operand is returned as is.
func Promote(left, right Type) Type {
	if left == String || right == String {
		return String
	}
	if !IsNumeric(left) {
		return left
	}
	if !IsNumeric(right) {
		return right
	}
	lk := left.(PrimitiveType).Kind
	rk := right.(PrimitiveType).Kind
	if numericRank[rk] > numericRank[lk] {
		return right
	}
	return left
}

// FunctionType describes a callable value.
type FunctionType struct {
	ParamTypes []Type
	ReturnType Type
}

func (f *FunctionType) TypeName() string {
	parts := make([]string, len(f.ParamTypes))
	for i, p := range f.ParamTypes {
		parts[i] = typeName(p)
	}
	return "function(" + strings.Join(parts, ", ") + ") " + typeName(f.ReturnType)
}

func typeName(t Type) string {
	if t == nil {
		return "void"
	}
	return t.TypeName()
}

// SameType compares two types structurally for function types and by
// identity otherwise.
func SameType(a, b Type) bool {
	af, aok := a.(*FunctionType)
	bf, bok := b.(*FunctionType)
	if aok && bok {
		return sameTypes(af.ParamTypes, bf.ParamTypes) && SameType(af.ReturnType, bf.ReturnType)
	}
	if aok || bok {
		return false
	}
	return a == b
}

func sameTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SameType(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Assignable reports whether a value of type from may be passed where to is
// expected: identical types, numeric widening, null to reference types and
// subclass to ancestor class.
func Assignable(from, to Type) bool {
	if SameType(from, to) || from == Unknown || to == Unknown {
		return true
	}
	if IsNumeric(from) && IsNumeric(to) {
		return numericRank[from.(PrimitiveType).Kind] <= numericRank[to.(PrimitiveType).Kind]
	}
	if from == Null {
		switch to.(type) {
		case *Class, *FunctionType:
			return true
		}
		return to == String
	}
	if fc, ok := from.(*Class); ok {
		if tc, ok := to.(*Class); ok {
			return fc.IsSubclassOf(tc)
		}
	}
	return false
}
