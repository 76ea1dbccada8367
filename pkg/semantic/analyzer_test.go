package semantic

import (
	"strings"
	"testing"

	"playscript/interpreter-go/pkg/ast"
)

func mustAnalyze(t *testing.T, program *ast.Program) *AnnotatedTree {
	t.Helper()
	tree, err := Analyze(program)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return tree
}

func expectNoErrors(t *testing.T, tree *AnnotatedTree) {
	t.Helper()
	if errs := tree.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func expectDiagnostic(t *testing.T, tree *AnnotatedTree, severity Severity, substr string) {
	t.Helper()
	for _, diag := range tree.Diagnostics() {
		if diag.Severity == severity && strings.Contains(diag.Message, substr) {
			return
		}
	}
	t.Fatalf("expected %s containing %q, got %v", severity, substr, tree.Diagnostics())
}

func functionNamed(t *testing.T, tree *AnnotatedTree, name string) *Function {
	t.Helper()
	for _, fn := range tree.Functions {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %s not found", name)
	return nil
}

func classNamed(t *testing.T, tree *AnnotatedTree, name string) *Class {
	t.Helper()
	for _, cls := range tree.Classes {
		if cls.Name == name {
			return cls
		}
	}
	t.Fatalf("class %s not found", name)
	return nil
}

func TestAnalyzeNilProgram(t *testing.T) {
	if _, err := Analyze(nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}

func TestScopesForScopedNodes(t *testing.T) {
	body := ast.Blk(ast.Decl("int", "y", ast.Int(1)))
	loop := ast.For([]ast.Statement{ast.Decl("int", "i", ast.Int(0))}, nil, nil, ast.Blk(ast.Break()))
	fn := ast.Fn("f", nil, nil, ast.Return(nil))
	cls := ast.Class("C", "")
	program := ast.Prog(body, loop, fn, cls)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)

	global, ok := tree.ScopeOf(program)
	if !ok || global != tree.Global {
		t.Fatalf("program scope = %d, want %d", global, tree.Global)
	}
	cases := []struct {
		name string
		node ast.Node
		kind ScopeKind
	}{
		{"block", body, ScopeBlock},
		{"for", loop, ScopeBlock},
		{"function", fn, ScopeFunction},
		{"function body", fn.Body, ScopeBlock},
		{"class", cls, ScopeClass},
	}
	for _, tc := range cases {
		id, ok := tree.ScopeOf(tc.node)
		if !ok {
			t.Fatalf("%s has no scope", tc.name)
		}
		if got := tree.Scopes.Kind(id); got != tc.kind {
			t.Fatalf("%s scope kind = %s, want %s", tc.name, got, tc.kind)
		}
	}
	fnScope, _ := tree.ScopeOf(fn)
	bodyScope, _ := tree.ScopeOf(fn.Body)
	if tree.Scopes.Parent(bodyScope) != fnScope || tree.Scopes.Parent(fnScope) != global {
		t.Fatalf("function scopes are not nested under the program scope")
	}
}

func TestIdentifiersResolveToInnermostDeclaration(t *testing.T) {
	inner := ast.ID("x")
	outer := ast.ID("x")
	program := ast.Prog(
		ast.Decl("int", "x", ast.Int(1)),
		ast.Blk(
			ast.Decl("String", "x", ast.Str("s")),
			ast.Println(inner),
		),
		ast.Println(outer),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)
	if tree.TypeOf(inner) != String {
		t.Fatalf("inner x type = %s, want String", tree.TypeOf(inner).TypeName())
	}
	if tree.TypeOf(outer) != Int {
		t.Fatalf("outer x type = %s, want int", tree.TypeOf(outer).TypeName())
	}
	if tree.SymbolOf(inner) == tree.SymbolOf(outer) {
		t.Fatalf("shadowed identifiers resolved to the same variable")
	}
}

func TestExpressionTypes(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expression
		want Type
	}{
		{"int literal", ast.Int(1), Int},
		{"long literal", ast.Long(1), Long},
		{"short literal", ast.Short(1), Short},
		{"float literal", ast.Flt(1), Float},
		{"double literal", ast.Dbl(1), Double},
		{"int plus long", ast.Bin("+", ast.Int(1), ast.Long(2)), Long},
		{"short times short", ast.Bin("*", ast.Short(1), ast.Short(2)), Short},
		{"float plus double", ast.Bin("+", ast.Flt(1), ast.Dbl(2)), Double},
		{"string concatenation", ast.Bin("+", ast.Str("a"), ast.Int(1)), String},
		{"comparison", ast.Bin("<", ast.Int(1), ast.Flt(2)), Boolean},
		{"equality", ast.Bin("==", ast.Str("a"), ast.Null()), Boolean},
		{"negation keeps type", ast.Neg(ast.Long(3)), Long},
		{"not", ast.Not(ast.Bool(true)), Boolean},
		{"null", ast.Null(), Null},
		{"char", ast.Chr("c"), Char},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustAnalyze(t, ast.Prog(ast.Expr(tc.expr)))
			expectNoErrors(t, tree)
			if got := tree.TypeOf(tc.expr); got != tc.want {
				t.Fatalf("type = %s, want %s", got.TypeName(), tc.want.TypeName())
			}
		})
	}
}

func TestVarTakesInitializerType(t *testing.T) {
	decl := ast.Var("v", ast.Dbl(1))
	later := ast.Var("w", nil)
	assign := ast.Assign(ast.ID("w"), ast.Str("s"))
	tree := mustAnalyze(t, ast.Prog(decl, later, ast.Expr(assign)))
	expectNoErrors(t, tree)
	if v := tree.SymbolOf(decl).(*Variable); v.Type != Double {
		t.Fatalf("var type = %s, want double", v.Type.TypeName())
	}
	if w := tree.SymbolOf(later).(*Variable); w.Type != String {
		t.Fatalf("untyped var should adopt first assigned type, got %s", w.Type.TypeName())
	}
}

func TestReturnTypeInference(t *testing.T) {
	program := ast.Prog(
		ast.Fn("answer", nil, nil, ast.Return(ast.Long(42))),
		ast.Fn("nothing", nil, nil, ast.Println()),
		ast.Fn("declared", nil, ast.Ty("double"), ast.Return(ast.Int(1))),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)
	cases := map[string]Type{"answer": Long, "nothing": Void, "declared": Double}
	for name, want := range cases {
		if got := functionNamed(t, tree, name).ReturnType; got != want {
			t.Fatalf("%s returns %s, want %s", name, got.TypeName(), want.TypeName())
		}
	}
}

func TestFreeVariables(t *testing.T) {
	program := ast.Prog(
		ast.Decl("int", "g", ast.Int(0)),
		ast.Fn("outer", []*ast.Parameter{ast.Param("p", ast.Ty("int"))}, nil,
			ast.Decl("int", "x", ast.Int(1)),
			ast.Fn("inner", nil, nil,
				ast.Decl("int", "own", ast.Int(2)),
				ast.Return(ast.Bin("+", ast.Bin("+", ast.ID("x"), ast.ID("p")), ast.ID("own"))),
			),
			ast.Return(ast.ID("inner")),
		),
		ast.Fn("readsGlobal", nil, nil, ast.Return(ast.ID("g"))),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)

	names := func(vars []*Variable) []string {
		out := make([]string, len(vars))
		for i, v := range vars {
			out[i] = v.Name
		}
		return out
	}
	if got := names(tree.FreeVariablesOf(functionNamed(t, tree, "inner"))); strings.Join(got, ",") != "x,p" {
		t.Fatalf("inner free variables = %v, want [x p]", got)
	}
	if got := tree.FreeVariablesOf(functionNamed(t, tree, "outer")); len(got) != 0 {
		t.Fatalf("outer should have no free variables, got %v", names(got))
	}
	if got := names(tree.FreeVariablesOf(functionNamed(t, tree, "readsGlobal"))); strings.Join(got, ",") != "g" {
		t.Fatalf("readsGlobal free variables = %v, want [g]", got)
	}
}

func TestFieldsAreNeverFree(t *testing.T) {
	program := ast.Prog(
		ast.Class("C", "",
			ast.Decl("int", "count", ast.Int(0)),
			ast.Fn("bump", nil, nil, ast.Expr(ast.PreInc(ast.ID("count")))),
		),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)
	if got := tree.FreeVariablesOf(functionNamed(t, tree, "bump")); len(got) != 0 {
		t.Fatalf("fields must not be captured, got %d free variables", len(got))
	}
}

func TestOverloadResolution(t *testing.T) {
	exact := ast.Call("show", ast.Long(1))
	widened := ast.Call("show", ast.Short(1))
	program := ast.Prog(
		ast.Fn("show", []*ast.Parameter{ast.Param("v", ast.Ty("int"))}, ast.Ty("void")),
		ast.Fn("show", []*ast.Parameter{ast.Param("v", ast.Ty("long"))}, ast.Ty("void")),
		ast.Expr(exact),
		ast.Expr(widened),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)
	if fn := tree.SymbolOf(exact).(*Function); fn.Params[0].Type != Long {
		t.Fatalf("exact match should pick show(long), got show(%s)", fn.Params[0].Type.TypeName())
	}
	if fn := tree.SymbolOf(widened).(*Function); fn.Params[0].Type != Int {
		t.Fatalf("widening match should pick the first applicable overload, got show(%s)", fn.Params[0].Type.TypeName())
	}
}

func TestClassHierarchyResolution(t *testing.T) {
	call := ast.MethodCall(ast.ID("d"), "speak")
	field := ast.Field(ast.ID("d"), "name")
	program := ast.Prog(
		ast.Class("Animal", "",
			ast.Decl("String", "name", ast.Str("a")),
			ast.Fn("speak", nil, ast.Ty("String"), ast.Return(ast.ID("name"))),
		),
		ast.Class("Dog", "Animal",
			ast.Fn("speak", nil, ast.Ty("String"), ast.Return(ast.Str("woof"))),
		),
		ast.Decl("Animal", "d", ast.Call("Dog")),
		ast.Println(call),
		ast.Println(field),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)

	animal := classNamed(t, tree, "Animal")
	dog := classNamed(t, tree, "Dog")
	if dog.Parent != animal || !dog.IsSubclassOf(animal) || animal.IsSubclassOf(dog) {
		t.Fatalf("Dog should extend Animal")
	}
	if ancestors := dog.Ancestors(); len(ancestors) != 2 || ancestors[0] != animal {
		t.Fatalf("ancestors should be root first, got %v", ancestors)
	}
	method, ok := tree.SymbolOf(call.Member).(*Function)
	if !ok || method.Class != animal {
		t.Fatalf("static method symbol should come from the declared type Animal")
	}
	if override := dog.LookupMethod("speak", nil); override == nil || override.Class != dog {
		t.Fatalf("Dog should override speak")
	}
	if f, ok := tree.SymbolOf(field).(*Variable); !ok || f != animal.Fields[0] {
		t.Fatalf("field should resolve to Animal.name")
	}
	if !tree.Scopes.IsLexicalParent(dog.Scope, method.Scope) {
		t.Fatalf("a subclass scope should count as lexical parent of inherited methods")
	}
	if tree.Scopes.IsLexicalParent(animal.Scope, dog.LookupMethod("speak", nil).Scope) {
		t.Fatalf("an ancestor scope is not the lexical parent of a subclass method")
	}
}

func TestConstructorResolution(t *testing.T) {
	explicit := ast.Call("P", ast.Int(1))
	bare := ast.Call("Q")
	program := ast.Prog(
		ast.Class("P", "",
			ast.Decl("int", "x", nil),
			ast.Fn("P", []*ast.Parameter{ast.Param("v", ast.Ty("int"))}, nil,
				ast.Expr(ast.Assign(ast.ID("x"), ast.ID("v"))),
			),
		),
		ast.Class("Q", ""),
		ast.Expr(explicit),
		ast.Expr(bare),
	)
	tree := mustAnalyze(t, program)
	expectNoErrors(t, tree)
	ctor, ok := tree.SymbolOf(explicit).(*Function)
	if !ok || !ctor.IsConstructor() || ctor.IsMethod() {
		t.Fatalf("P(1) should resolve to the constructor, got %v", tree.SymbolOf(explicit))
	}
	if cls, ok := tree.SymbolOf(bare).(*Class); !ok || cls.Name != "Q" {
		t.Fatalf("Q() should resolve to the class, got %v", tree.SymbolOf(bare))
	}
	if tree.TypeOf(explicit) != Type(classNamed(t, tree, "P")) {
		t.Fatalf("constructor call should have the class type")
	}
}

func TestDiagnostics(t *testing.T) {
	cases := []struct {
		name     string
		program  *ast.Program
		severity Severity
		message  string
	}{
		{"undefined variable", ast.Prog(ast.Println(ast.ID("nope"))), SeverityError, "undefined variable nope"},
		{"break outside loop", ast.Prog(ast.Break()), SeverityError, "break outside of a loop"},
		{"return outside function", ast.Prog(ast.Return(nil)), SeverityError, "return outside of a function"},
		{"non-boolean condition", ast.Prog(ast.If(ast.Int(1), ast.Blk())), SeverityError, "if condition must be boolean"},
		{"unknown type", ast.Prog(ast.Decl("Widget", "w", nil)), SeverityError, "unknown type Widget"},
		{"unknown superclass", ast.Prog(ast.Class("A", "Missing")), SeverityError, "unknown superclass Missing"},
		{"duplicate class", ast.Prog(ast.Class("A", ""), ast.Class("A", "")), SeverityError, "class A is already declared"},
		{"bad arithmetic", ast.Prog(ast.Expr(ast.Bin("-", ast.Str("a"), ast.Int(1)))), SeverityError, "operator - is not defined"},
		{"assign to literal", ast.Prog(ast.Expr(ast.Assign(ast.Int(1), ast.Int(2)))), SeverityError, "left side of assignment"},
		{"missing field", ast.Prog(ast.Class("A", ""), ast.Var("a", ast.Call("A")), ast.Println(ast.Field(ast.ID("a"), "f"))), SeverityError, "class A has no field f"},
		{"class as value", ast.Prog(ast.Class("A", ""), ast.Println(ast.ID("A"))), SeverityError, "cannot be used as a value"},
		{"unknown function", ast.Prog(ast.Expr(ast.Call("missing", ast.Int(1)))), SeverityWarning, "unknown function missing(int)"},
		{"foreach skipped", ast.Prog(ast.NewForEachStatement(ast.Var("x", nil), ast.Int(1), ast.Blk())), SeverityWarning, "enhanced for loops are not supported"},
		{"switch skipped", ast.Prog(ast.NewSwitchStatement(ast.Int(1), nil)), SeverityWarning, "switch statements are not supported"},
		{"narrowing initializer", ast.Prog(ast.Decl("int", "i", ast.Dbl(1))), SeverityWarning, "cannot initialize int i with double"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustAnalyze(t, tc.program)
			expectDiagnostic(t, tree, tc.severity, tc.message)
		})
	}
}

func TestInheritanceCycleIsRejected(t *testing.T) {
	tree := mustAnalyze(t, ast.Prog(ast.Class("A", "B"), ast.Class("B", "A")))
	expectDiagnostic(t, tree, SeverityError, "inheritance cycle")
}

func TestLogRecordsRuntimeWarning(t *testing.T) {
	tree := mustAnalyze(t, ast.Prog())
	tree.Log("runtime problem", nil)
	if tree.HasErrors() {
		t.Fatalf("logged diagnostics must not count as errors")
	}
	expectDiagnostic(t, tree, SeverityWarning, "runtime problem")
}

func TestPromoteAndAssignable(t *testing.T) {
	if Promote(Int, Long) != Long || Promote(Double, Short) != Double {
		t.Fatalf("numeric promotion should pick the wider type")
	}
	if Promote(Int, String) != String {
		t.Fatalf("String wins promotion")
	}
	cls := &Class{Name: "C"}
	sub := &Class{Name: "D", Parent: cls}
	cases := []struct {
		from, to Type
		want     bool
	}{
		{Short, Long, true},
		{Long, Int, false},
		{Null, cls, true},
		{Null, String, true},
		{Null, Int, false},
		{sub, cls, true},
		{cls, sub, false},
		{Unknown, Int, true},
		{&FunctionType{ParamTypes: []Type{Int}, ReturnType: Int}, &FunctionType{ParamTypes: []Type{Int}, ReturnType: Int}, true},
		{&FunctionType{ReturnType: Int}, &FunctionType{ReturnType: Long}, false},
	}
	for _, tc := range cases {
		if got := Assignable(tc.from, tc.to); got != tc.want {
			t.Fatalf("Assignable(%s, %s) = %v, want %v", tc.from.TypeName(), tc.to.TypeName(), got, tc.want)
		}
	}
}
