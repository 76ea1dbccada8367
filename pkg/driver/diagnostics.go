package driver

import (
	"fmt"
	"io"

	"playscript/interpreter-go/pkg/semantic"
)

// DescribeDiagnostic renders a diagnostic for terminal output.
func DescribeDiagnostic(diag semantic.Diagnostic) string {
	prefix := "warning"
	if diag.Severity == semantic.SeverityError {
		prefix = "error"
	}
	if diag.Node == nil {
		return fmt.Sprintf("%s: %s", prefix, diag.Message)
	}
	return fmt.Sprintf("%s: %s [%s]", prefix, diag.Message, diag.Node.NodeType())
}

// WriteDiagnostics prints every diagnostic on its own line and reports how
// many were errors.
func WriteDiagnostics(w io.Writer, diags []semantic.Diagnostic) int {
	errors := 0
	for _, diag := range diags {
		if diag.Severity == semantic.SeverityError {
			errors++
		}
		fmt.Fprintln(w, DescribeDiagnostic(diag))
	}
	return errors
}
