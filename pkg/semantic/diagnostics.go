package semantic

import (
	"fmt"

	"github.com/tliron/commonlog"

	"playscript/interpreter-go/pkg/ast"
)

var log = commonlog.GetLogger("playscript.semantic")

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic represents an analysis or runtime error or warning.
type Diagnostic struct {
	Severity Severity
	Message  string
	Node     ast.Node
}

func (d Diagnostic) String() string {
	if d.Node == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", d.Severity, d.Message, d.Node.NodeType())
}

func (t *AnnotatedTree) addDiagnostic(severity Severity, message string, node ast.Node) {
	t.mu.Lock()
	t.diagnostics = append(t.diagnostics, Diagnostic{Severity: severity, Message: message, Node: node})
	t.mu.Unlock()
	switch severity {
	case SeverityError:
		log.Errorf("%s", message)
	default:
		log.Warningf("%s", message)
	}
}

// Log records a non-fatal diagnostic. It never aborts evaluation.
func (t *AnnotatedTree) Log(message string, node ast.Node) {
	t.addDiagnostic(SeverityWarning, message, node)
}

func (t *AnnotatedTree) errorf(node ast.Node, format string, args ...any) {
	t.addDiagnostic(SeverityError, fmt.Sprintf(format, args...), node)
}

func (t *AnnotatedTree) warnf(node ast.Node, format string, args ...any) {
	t.addDiagnostic(SeverityWarning, fmt.Sprintf(format, args...), node)
}

// Diagnostics returns a copy of everything logged so far.
func (t *AnnotatedTree) Diagnostics() []Diagnostic {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Diagnostic, len(t.diagnostics))
	copy(out, t.diagnostics)
	return out
}

// Errors returns the diagnostics of error severity.
func (t *AnnotatedTree) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range t.Diagnostics() {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func (t *AnnotatedTree) HasErrors() bool {
	return len(t.Errors()) > 0
}
