package interpreter

import (
	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

func (i *Interpreter) evaluateMemberAccess(ctx *ExecContext, expr *ast.MemberAccessExpression) (runtime.Value, error) {
	obj, err := i.evaluateExpression(ctx, expr.Object)
	if err != nil {
		return nil, err
	}
	switch member := expr.Member.(type) {
	case *ast.Identifier:
		lv, err := i.fieldLValue(ctx, expr, obj, member.Name)
		if err != nil || lv == nil {
			return runtime.Null, err
		}
		return lv.Get(), nil
	case *ast.FunctionCall:
		return i.evaluateMethodCall(ctx, expr, obj, member)
	default:
		return nil, internalErrorf(expr, "unsupported member %T", expr.Member)
	}
}

// fieldLValue re-resolves the field by name against the receiver's runtime
// class, so a redeclared field in a subclass wins over the static symbol.
func (i *Interpreter) fieldLValue(ctx *ExecContext, expr *ast.MemberAccessExpression, obj runtime.Value, name string) (*runtime.LValue, error) {
	inst, ok := obj.(*runtime.ClassInstance)
	if !ok {
		ctx.log(expr, "unable to access field %s of %s", name, describeValue(obj))
		return nil, nil
	}
	field := i.tree.LookupField(inst.Class, name)
	if field == nil {
		ctx.log(expr, "unable to find field %s in class %s", name, inst.Class.Name)
		return nil, nil
	}
	if !inst.Has(field) {
		return nil, internalErrorf(expr, "instance of %s has no storage for field %s", inst.Class.Name, name)
	}
	return &runtime.LValue{Container: inst, Variable: field}, nil
}

// evaluateMethodCall invokes obj.method(args). Arguments are evaluated in
// the caller's frames before the receiver frame is pushed.
func (i *Interpreter) evaluateMethodCall(ctx *ExecContext, expr *ast.MemberAccessExpression, obj runtime.Value, call *ast.FunctionCall) (runtime.Value, error) {
	name := calleeName(call)
	inst, ok := obj.(*runtime.ClassInstance)
	if !ok {
		ctx.log(expr, "unable to call method %s on %s", name, describeValue(obj))
		return runtime.Null, nil
	}
	method, ok := i.tree.SymbolOf(call).(*semantic.Function)
	if !ok {
		ctx.log(call, "unable to find function %s", name)
		return runtime.Null, nil
	}
	args, err := i.evaluateArguments(ctx, call.Arguments)
	if err != nil {
		return nil, err
	}
	return i.callMethod(ctx, inst, method, args, call)
}

func describeValue(v runtime.Value) string {
	if inst, ok := v.(*runtime.ClassInstance); ok {
		return "instance of " + inst.Class.Name
	}
	return kindName(v)
}
