package interpreter

import (
	"fmt"

	"playscript/interpreter-go/pkg/ast"
)

// InternalError reports a broken invariant: an unresolved symbol, an
// assignment to something that is not storage, or a break escaping a call.
// It points at a defect in analysis or in the interpreter, never at the
// program being run.
type InternalError struct {
	Message string
	Node    ast.Node
}

func (e *InternalError) Error() string {
	if e.Node == nil {
		return "internal error: " + e.Message
	}
	return fmt.Sprintf("internal error: %s (at %s)", e.Message, e.Node.NodeType())
}

// RuntimeError is a fault of the running program that stops execution.
type RuntimeError struct {
	Message string
	Node    ast.Node
}

func (e *RuntimeError) Error() string {
	return "runtime error: " + e.Message
}

func internalErrorf(node ast.Node, format string, args ...any) error {
	return &InternalError{Message: fmt.Sprintf(format, args...), Node: node}
}

func runtimeErrorf(node ast.Node, format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Node: node}
}
