package runtime

import (
	"math"
	"testing"

	"playscript/interpreter-go/pkg/semantic"
)

func TestNewIntegerWrapsToWidth(t *testing.T) {
	cases := []struct {
		val  int64
		typ  IntegerType
		want int64
	}{
		{32768, IntegerI16, -32768},
		{65535, IntegerI16, -1},
		{2147483648, IntegerI32, -2147483648},
		{2147483648, IntegerI64, 2147483648},
		{4294967297, "", 1},
	}
	for _, tc := range cases {
		got := NewInteger(tc.val, tc.typ)
		if got.Val != tc.want {
			t.Fatalf("NewInteger(%d, %q) = %d, want %d", tc.val, tc.typ, got.Val, tc.want)
		}
	}
	if got := NewInteger(1, "bogus"); got.TypeSuffix != IntegerI32 {
		t.Fatalf("unknown integer type should default to i32, got %s", got.TypeSuffix)
	}
}

func TestNewFloatRoundsSinglePrecision(t *testing.T) {
	single := NewFloat(0.1, FloatF32)
	if single.Val != float64(float32(0.1)) {
		t.Fatalf("f32 value not rounded: %v", single.Val)
	}
	double := NewFloat(0.1, FloatF64)
	if double.Val != 0.1 {
		t.Fatalf("f64 value changed: %v", double.Val)
	}
	if inf := NewFloat(math.Inf(1), FloatF32); !math.IsInf(inf.Val, 1) {
		t.Fatalf("infinity should survive, got %v", inf.Val)
	}
	if got := NewFloat(1, ""); got.TypeSuffix != FloatF32 {
		t.Fatalf("unknown float type should default to f32, got %s", got.TypeSuffix)
	}
}

func TestIsNull(t *testing.T) {
	if !IsNull(Null) {
		t.Fatalf("Null should be null")
	}
	if IsNull(nil) {
		t.Fatalf("a missing value is not the null singleton")
	}
	if IsNull(StringValue{}) {
		t.Fatalf("empty string is not null")
	}
}

func TestContainersStoreByVariableIdentity(t *testing.T) {
	a := &semantic.Variable{Name: "x"}
	b := &semantic.Variable{Name: "x"}
	containers := map[string]Container{
		"local":    NewLocalStorage(),
		"closure":  NewClosure(&semantic.Function{Name: "f"}),
		"instance": NewClassInstance(&semantic.Class{Name: "C"}, 1),
	}
	for name, c := range containers {
		c.Set(a, NewInteger(1, IntegerI32))
		if !c.Has(a) {
			t.Fatalf("%s: expected variable to be stored", name)
		}
		if c.Has(b) {
			t.Fatalf("%s: a different variable with the same name must not match", name)
		}
		if _, ok := c.Get(b); ok {
			t.Fatalf("%s: lookup by a different variable should miss", name)
		}
	}
}

func TestClassInstanceKeepsAllocationID(t *testing.T) {
	inst := NewClassInstance(&semantic.Class{Name: "C"}, 7)
	if inst.ID != 7 || inst.Kind() != KindClassInstance {
		t.Fatalf("unexpected instance %+v", inst)
	}
}

func TestFieldNamesAreSorted(t *testing.T) {
	inst := NewClassInstance(&semantic.Class{Name: "C"}, 1)
	inst.Set(&semantic.Variable{Name: "zeta"}, Null)
	inst.Set(&semantic.Variable{Name: "alpha"}, Null)
	names := inst.FieldNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("unexpected field names %v", names)
	}
}

func TestCompletions(t *testing.T) {
	if NormalCompletion(Null).Abrupt() {
		t.Fatalf("normal completion is not abrupt")
	}
	if !BreakCompletion().Abrupt() {
		t.Fatalf("break is abrupt")
	}
	ret := ReturnCompletion(nil)
	if !ret.Abrupt() || !IsNull(ret.Value) {
		t.Fatalf("return without value should carry null, got %+v", ret)
	}
	if CompletionReturn.String() != "return" {
		t.Fatalf("unexpected kind name %s", CompletionReturn)
	}
}
