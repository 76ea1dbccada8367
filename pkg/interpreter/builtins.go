package interpreter

import (
	"fmt"

	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

// callBuiltin runs the builtin named by an unresolved call, if there is one.
func (i *Interpreter) callBuiltin(ctx *ExecContext, name string, call *ast.FunctionCall) (runtime.Value, bool, error) {
	switch name {
	case semantic.BuiltinPrintln:
		val, err := i.builtinPrintln(ctx, call)
		return val, true, err
	default:
		return nil, false, nil
	}
}

// builtinPrintln evaluates every argument and prints the last one, or an
// empty line when there are none.
func (i *Interpreter) builtinPrintln(ctx *ExecContext, call *ast.FunctionCall) (runtime.Value, error) {
	args, err := i.evaluateArguments(ctx, call.Arguments)
	if err != nil {
		return nil, err
	}
	line := ""
	if len(args) > 0 {
		line = valueToString(args[len(args)-1])
	}
	if _, err := fmt.Fprintln(ctx.Out, line); err != nil {
		return nil, fmt.Errorf("println: %w", err)
	}
	return runtime.Null, nil
}
