package interpreter

import (
	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

func calleeName(call *ast.FunctionCall) string {
	if call.Callee != nil {
		return call.Callee.Name
	}
	return call.Keyword
}

func (i *Interpreter) evaluateArguments(ctx *ExecContext, exprs []ast.Expression) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := i.evaluateExpression(ctx, expr)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

// evaluateFunctionCall dispatches an unqualified call on the symbol analysis
// resolved for it: a function-typed variable, a function, a class, or
// nothing (builtins and unknown names).
func (i *Interpreter) evaluateFunctionCall(ctx *ExecContext, call *ast.FunctionCall) (runtime.Value, error) {
	if call.Callee == nil {
		// this(...) and super(...) are not executed.
		return runtime.Null, nil
	}
	name := call.Callee.Name
	switch sym := i.tree.SymbolOf(call).(type) {
	case *semantic.Variable:
		lv, err := i.lvalueOf(ctx, sym, call)
		if err != nil {
			return nil, err
		}
		closure, ok := lv.Get().(*runtime.Closure)
		if !ok {
			ctx.log(call, "unable to call %s: value is %s", name, describeValue(lv.Get()))
			return runtime.Null, nil
		}
		return i.callFunction(ctx, closure.Function, closure, call)
	case *semantic.Function:
		return i.callFunction(ctx, sym, nil, call)
	case *semantic.Class:
		inst, err := i.construct(ctx, sym, call)
		if err != nil {
			return nil, err
		}
		return inst, nil
	case nil:
		if val, ok, err := i.callBuiltin(ctx, name, call); ok {
			return val, err
		}
		ctx.log(call, "unable to find function %s", name)
		return runtime.Null, nil
	default:
		return nil, internalErrorf(call, "cannot call %T %s", sym, name)
	}
}

// callFunction routes a resolved function to constructor, method or plain
// invocation. closure is reused when the call goes through a variable.
func (i *Interpreter) callFunction(ctx *ExecContext, fn *semantic.Function, closure *runtime.Closure, call *ast.FunctionCall) (runtime.Value, error) {
	if fn.IsConstructor() {
		return i.invokeConstructor(ctx, fn, call)
	}
	args, err := i.evaluateArguments(ctx, call.Arguments)
	if err != nil {
		return nil, err
	}
	if fn.IsMethod() {
		receiver := ctx.Frames.Receiver()
		if receiver == nil {
			return nil, internalErrorf(call, "method %s called without a receiver", fn.Name)
		}
		return i.callMethod(ctx, receiver, fn, args, call)
	}
	return i.invokeFunction(ctx, fn, closure, args, call)
}

// callMethod performs virtual dispatch: the method is re-resolved by name
// and parameter types against the receiver's runtime class, then invoked
// with a receiver frame underneath the call frame.
func (i *Interpreter) callMethod(ctx *ExecContext, receiver *runtime.ClassInstance, method *semantic.Function, args []runtime.Value, call *ast.FunctionCall) (runtime.Value, error) {
	target := method
	if override := receiver.Class.LookupMethod(method.Name, method.ParamTypes()); override != nil && override != method {
		log.Debugf("dispatch %s.%s to %s.%s", method.Class.Name, method.Name, override.Class.Name, override.Name)
		target = override
	}
	ctx.Frames.Push(receiver.Class.Scope, receiver)
	defer ctx.Frames.Pop()
	return i.invokeFunction(ctx, target, nil, args, call)
}

// invokeConstructor builds the instance with its default field values,
// then runs the constructor body on top of an instance frame. The
// arguments are evaluated in the caller's frames once construction is done.
func (i *Interpreter) invokeConstructor(ctx *ExecContext, ctor *semantic.Function, call *ast.FunctionCall) (runtime.Value, error) {
	inst, err := i.construct(ctx, ctor.Class, call)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(ctx, call.Arguments)
	if err != nil {
		return nil, err
	}
	ctx.Frames.Push(ctor.Class.Scope, inst)
	defer ctx.Frames.Pop()
	if _, err := i.invokeFunction(ctx, ctor, nil, args, call); err != nil {
		return nil, err
	}
	return inst, nil
}

// invokeFunction pushes a frame on the closure, binds the parameters and
// runs the body. A return completion is unwrapped to the call's value.
func (i *Interpreter) invokeFunction(ctx *ExecContext, fn *semantic.Function, closure *runtime.Closure, args []runtime.Value, call ast.Node) (runtime.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, internalErrorf(call, "function %s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	ctx.depth++
	defer func() { ctx.depth-- }()
	if i.maxCallDepth > 0 && ctx.depth > i.maxCallDepth {
		return nil, runtimeErrorf(call, "maximum call depth %d exceeded in %s", i.maxCallDepth, fn.Name)
	}
	if closure == nil {
		closure = runtime.NewClosure(fn)
	}

	ctx.Frames.Push(fn.Scope, closure)
	defer ctx.Frames.Pop()
	for idx, param := range fn.Params {
		lv, err := i.lvalueOf(ctx, param, call)
		if err != nil {
			return nil, err
		}
		lv.Set(args[idx])
	}
	if fn.Decl == nil || fn.Decl.Body == nil {
		return runtime.Null, nil
	}
	completion, err := i.executeBlock(ctx, fn.Decl.Body)
	if err != nil {
		return nil, err
	}
	switch completion.Kind {
	case runtime.CompletionReturn:
		return completion.Value, nil
	case runtime.CompletionBreak:
		return nil, internalErrorf(call, "break escaped function %s", fn.Name)
	default:
		return runtime.Null, nil
	}
}
