package interpreter

import (
	"errors"
	"fmt"
	"math"

	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

type numericKind int

const (
	numShort numericKind = iota
	numInt
	numLong
	numFloat
	numDouble
)

func (k numericKind) String() string {
	switch k {
	case numShort:
		return "short"
	case numInt:
		return "int"
	case numLong:
		return "long"
	case numFloat:
		return "float"
	case numDouble:
		return "double"
	default:
		return fmt.Sprintf("numeric_%d", int(k))
	}
}

func numericKindOf(t semantic.Type) (numericKind, bool) {
	p, ok := t.(semantic.PrimitiveType)
	if !ok {
		return 0, false
	}
	switch p.Kind {
	case semantic.PrimitiveShort:
		return numShort, true
	case semantic.PrimitiveInt:
		return numInt, true
	case semantic.PrimitiveLong:
		return numLong, true
	case semantic.PrimitiveFloat:
		return numFloat, true
	case semantic.PrimitiveDouble:
		return numDouble, true
	default:
		return 0, false
	}
}

func numericKindOfValue(v runtime.Value) (numericKind, bool) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		switch n.TypeSuffix {
		case runtime.IntegerI16:
			return numShort, true
		case runtime.IntegerI64:
			return numLong, true
		default:
			return numInt, true
		}
	case runtime.FloatValue:
		if n.TypeSuffix == runtime.FloatF64 {
			return numDouble, true
		}
		return numFloat, true
	default:
		return 0, false
	}
}

func widerKind(a, b numericKind) numericKind {
	if b > a {
		return b
	}
	return a
}

// Operators are dispatched through tables keyed by operator and numeric kind.

type opKey struct {
	op   string
	kind numericKind
}

type arithmeticFunc func(left, right runtime.Value) (runtime.Value, error)
type comparisonFunc func(left, right runtime.Value) (bool, error)

var (
	arithmeticOps = make(map[opKey]arithmeticFunc)
	comparisonOps = make(map[opKey]comparisonFunc)
)

var errDivisionByZero = errors.New("integer division by zero")

func init() {
	registerIntegerOps[int16](numShort, runtime.IntegerI16)
	registerIntegerOps[int32](numInt, runtime.IntegerI32)
	registerIntegerOps[int64](numLong, runtime.IntegerI64)
	registerFloatOps[float32](numFloat, runtime.FloatF32)
	registerFloatOps[float64](numDouble, runtime.FloatF64)
}

func registerIntegerOps[T int16 | int32 | int64](kind numericKind, typ runtime.IntegerType) {
	binary := func(fn func(a, b T) (T, error)) arithmeticFunc {
		return func(left, right runtime.Value) (runtime.Value, error) {
			a, err := toInt64(left)
			if err != nil {
				return nil, err
			}
			b, err := toInt64(right)
			if err != nil {
				return nil, err
			}
			result, err := fn(T(a), T(b))
			if err != nil {
				return nil, err
			}
			return runtime.NewInteger(int64(result), typ), nil
		}
	}
	arithmeticOps[opKey{"+", kind}] = binary(func(a, b T) (T, error) { return a + b, nil })
	arithmeticOps[opKey{"-", kind}] = binary(func(a, b T) (T, error) { return a - b, nil })
	arithmeticOps[opKey{"*", kind}] = binary(func(a, b T) (T, error) { return a * b, nil })
	arithmeticOps[opKey{"/", kind}] = binary(func(a, b T) (T, error) {
		if b == 0 {
			return 0, errDivisionByZero
		}
		return a / b, nil
	})

	compare := func(fn func(a, b T) bool) comparisonFunc {
		return func(left, right runtime.Value) (bool, error) {
			a, err := toInt64(left)
			if err != nil {
				return false, err
			}
			b, err := toInt64(right)
			if err != nil {
				return false, err
			}
			return fn(T(a), T(b)), nil
		}
	}
	registerComparisons(kind, compare)
}

func registerFloatOps[T float32 | float64](kind numericKind, typ runtime.FloatType) {
	binary := func(fn func(a, b T) T) arithmeticFunc {
		return func(left, right runtime.Value) (runtime.Value, error) {
			a, err := toFloat64(left)
			if err != nil {
				return nil, err
			}
			b, err := toFloat64(right)
			if err != nil {
				return nil, err
			}
			return runtime.NewFloat(float64(fn(T(a), T(b))), typ), nil
		}
	}
	arithmeticOps[opKey{"+", kind}] = binary(func(a, b T) T { return a + b })
	arithmeticOps[opKey{"-", kind}] = binary(func(a, b T) T { return a - b })
	arithmeticOps[opKey{"*", kind}] = binary(func(a, b T) T { return a * b })
	arithmeticOps[opKey{"/", kind}] = binary(func(a, b T) T { return a / b })

	compare := func(fn func(a, b T) bool) comparisonFunc {
		return func(left, right runtime.Value) (bool, error) {
			a, err := toFloat64(left)
			if err != nil {
				return false, err
			}
			b, err := toFloat64(right)
			if err != nil {
				return false, err
			}
			return fn(T(a), T(b)), nil
		}
	}
	registerComparisons(kind, compare)
}

func registerComparisons[T int16 | int32 | int64 | float32 | float64](kind numericKind, compare func(func(a, b T) bool) comparisonFunc) {
	comparisonOps[opKey{"<", kind}] = compare(func(a, b T) bool { return a < b })
	comparisonOps[opKey{"<=", kind}] = compare(func(a, b T) bool { return a <= b })
	comparisonOps[opKey{">", kind}] = compare(func(a, b T) bool { return a > b })
	comparisonOps[opKey{">=", kind}] = compare(func(a, b T) bool { return a >= b })
	comparisonOps[opKey{"==", kind}] = compare(func(a, b T) bool { return a == b })
	comparisonOps[opKey{"!=", kind}] = compare(func(a, b T) bool { return a != b })
}

func toInt64(v runtime.Value) (int64, error) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return n.Val, nil
	case runtime.FloatValue:
		if math.IsNaN(n.Val) || n.Val < math.MinInt64 || n.Val >= math.MaxInt64 {
			return 0, fmt.Errorf("float operand %v does not fit in an integer", n.Val)
		}
		return int64(n.Val), nil
	default:
		return 0, fmt.Errorf("operand of kind %s is not numeric", kindName(v))
	}
}

func toFloat64(v runtime.Value) (float64, error) {
	switch n := v.(type) {
	case runtime.IntegerValue:
		return float64(n.Val), nil
	case runtime.FloatValue:
		return n.Val, nil
	default:
		return 0, fmt.Errorf("operand of kind %s is not numeric", kindName(v))
	}
}

func kindName(v runtime.Value) string {
	if v == nil {
		return "none"
	}
	return v.Kind().String()
}

func isNumericValue(v runtime.Value) bool {
	_, ok := numericKindOfValue(v)
	return ok
}

// targetKind picks the numeric representation for an operation: the static
// type when analysis supplied one, else the wider of the operands' runtime
// kinds.
func targetKind(node ast.Node, target semantic.Type, left, right runtime.Value) (numericKind, error) {
	if kind, ok := numericKindOf(target); ok {
		return kind, nil
	}
	lk, lok := numericKindOfValue(left)
	rk, rok := numericKindOfValue(right)
	if target == semantic.Unknown && lok && rok {
		return widerKind(lk, rk), nil
	}
	return 0, internalErrorf(node, "unsupported target type %s for %s and %s", target.TypeName(), kindName(left), kindName(right))
}

// arithmetic applies + - * / in the target type. A string target
// concatenates the textual forms of both operands.
func arithmetic(node ast.Node, op string, target semantic.Type, left, right runtime.Value) (runtime.Value, error) {
	if op == "+" && isConcatenation(target, left, right) {
		return runtime.StringValue{Val: valueToString(left) + valueToString(right)}, nil
	}
	kind, err := targetKind(node, target, left, right)
	if err != nil {
		return nil, err
	}
	fn, ok := arithmeticOps[opKey{op, kind}]
	if !ok {
		return nil, internalErrorf(node, "operator %s is not defined for %s", op, kind)
	}
	result, err := fn(left, right)
	if errors.Is(err, errDivisionByZero) {
		return nil, runtimeErrorf(node, "%v", err)
	}
	if err != nil {
		return nil, internalErrorf(node, "%s %s: %v", kind, op, err)
	}
	return result, nil
}

func isConcatenation(target semantic.Type, left, right runtime.Value) bool {
	if target == semantic.String {
		return true
	}
	if target != semantic.Unknown {
		return false
	}
	_, ls := left.(runtime.StringValue)
	_, rs := right.(runtime.StringValue)
	return ls || rs
}

func compareValues(node ast.Node, op string, promoted semantic.Type, left, right runtime.Value) (bool, error) {
	kind, err := targetKind(node, promoted, left, right)
	if err != nil {
		return false, err
	}
	fn, ok := comparisonOps[opKey{op, kind}]
	if !ok {
		return false, internalErrorf(node, "operator %s is not defined for %s", op, kind)
	}
	result, err := fn(left, right)
	if err != nil {
		return false, internalErrorf(node, "%s %s: %v", kind, op, err)
	}
	return result, nil
}

// valuesEqual compares numbers in the promoted type, other scalars by value
// and objects and closures by identity.
func valuesEqual(node ast.Node, promoted semantic.Type, left, right runtime.Value) (bool, error) {
	if isNumericValue(left) && isNumericValue(right) {
		target := promoted
		if _, ok := numericKindOf(target); !ok {
			target = semantic.Unknown
		}
		return compareValues(node, "==", target, left, right)
	}
	switch l := left.(type) {
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val, nil
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val, nil
	case runtime.CharValue:
		r, ok := right.(runtime.CharValue)
		return ok && l.Val == r.Val, nil
	case runtime.NullValue:
		return runtime.IsNull(right), nil
	case *runtime.ClassInstance:
		r, ok := right.(*runtime.ClassInstance)
		return ok && l == r, nil
	case *runtime.Closure:
		r, ok := right.(*runtime.Closure)
		return ok && l == r, nil
	default:
		return false, nil
	}
}

// zeroOf and oneOf build the constants used by negation and increments.
func zeroOf(kind numericKind) runtime.Value {
	return constantOf(kind, 0)
}

func oneOf(kind numericKind) runtime.Value {
	return constantOf(kind, 1)
}

func constantOf(kind numericKind, n int64) runtime.Value {
	switch kind {
	case numShort:
		return runtime.NewInteger(n, runtime.IntegerI16)
	case numLong:
		return runtime.NewInteger(n, runtime.IntegerI64)
	case numFloat:
		return runtime.NewFloat(float64(n), runtime.FloatF32)
	case numDouble:
		return runtime.NewFloat(float64(n), runtime.FloatF64)
	default:
		return runtime.NewInteger(n, runtime.IntegerI32)
	}
}

func kindType(kind numericKind) semantic.Type {
	switch kind {
	case numShort:
		return semantic.Short
	case numLong:
		return semantic.Long
	case numFloat:
		return semantic.Float
	case numDouble:
		return semantic.Double
	default:
		return semantic.Int
	}
}
