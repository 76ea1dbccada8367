package driver

import (
	"bytes"
	"testing"

	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/semantic"
)

func TestWriteDiagnostics(t *testing.T) {
	diags := []semantic.Diagnostic{
		{Severity: semantic.SeverityWarning, Message: "unknown function f()", Node: ast.NewBreakStatement()},
		{Severity: semantic.SeverityError, Message: "return outside of a function"},
		{Severity: semantic.SeverityError, Message: "break outside of a loop"},
	}
	var buf bytes.Buffer
	if got := WriteDiagnostics(&buf, diags); got != 2 {
		t.Fatalf("error count = %d, want 2", got)
	}
	want := "warning: unknown function f() [BreakStatement]\n" +
		"error: return outside of a function\n" +
		"error: break outside of a loop\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}
