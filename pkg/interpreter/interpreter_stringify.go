package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"playscript/interpreter-go/pkg/runtime"
)

// valueToString renders the textual form used by println and string
// concatenation.
func valueToString(val runtime.Value) string {
	switch v := val.(type) {
	case nil:
		return "null"
	case runtime.StringValue:
		return v.Val
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.CharValue:
		return string(v.Val)
	case runtime.NullValue:
		return "null"
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.FloatValue:
		bits := 32
		if v.TypeSuffix == runtime.FloatF64 {
			bits = 64
		}
		return formatFloat(v.Val, bits)
	case *runtime.ClassInstance:
		return fmt.Sprintf("%s@%d", v.Class.Name, v.ID)
	case *runtime.Closure:
		return "function " + v.Function.Name
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// formatFloat prints the shortest representation that round-trips at the
// given precision. Integral values keep a trailing ".0"; very large and very
// small magnitudes use an exponent ("1.5E10").
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(f, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(f, 'E', -1, bits)
	mantissa, exponent, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	exp, err := strconv.Atoi(exponent)
	if err != nil {
		return s
	}
	return mantissa + "E" + strconv.Itoa(exp)
}
