package interpreter

import (
	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

// evaluateExpression computes the value of node. Variable reads are
// dereferenced here; evaluateLValue yields the storage itself.
func (i *Interpreter) evaluateExpression(ctx *ExecContext, node ast.Expression) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.CharLiteral:
		if len(n.Value) == 0 {
			return nil, internalErrorf(n, "empty char literal")
		}
		return runtime.CharValue{Val: []rune(n.Value)[0]}, nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.IntegerLiteral:
		suffix := runtime.IntegerI32
		if n.IntegerType != nil {
			switch *n.IntegerType {
			case ast.IntegerTypeShort:
				suffix = runtime.IntegerI16
			case ast.IntegerTypeLong:
				suffix = runtime.IntegerI64
			}
		}
		return runtime.NewInteger(n.Value, suffix), nil
	case *ast.FloatLiteral:
		suffix := runtime.FloatF32
		if n.FloatType != nil && *n.FloatType == ast.FloatTypeDouble {
			suffix = runtime.FloatF64
		}
		return runtime.NewFloat(n.Value, suffix), nil
	case *ast.Identifier:
		return i.evaluateIdentifier(ctx, n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(ctx, n)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(ctx, n)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(ctx, n)
	case *ast.PostfixExpression:
		return i.evaluatePostfixExpression(ctx, n)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(ctx, n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(ctx, n)
	case *ast.ThisExpression, *ast.SuperExpression:
		return runtime.Null, nil
	case nil:
		return runtime.Null, nil
	default:
		return nil, internalErrorf(node, "unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateIdentifier(ctx *ExecContext, id *ast.Identifier) (runtime.Value, error) {
	switch sym := i.tree.SymbolOf(id).(type) {
	case *semantic.Variable:
		lv, err := i.lvalueOf(ctx, sym, id)
		if err != nil {
			return nil, err
		}
		return lv.Get(), nil
	case *semantic.Function:
		return runtime.NewClosure(sym), nil
	default:
		return nil, internalErrorf(id, "identifier %s is not resolved to a variable or function", id.Name)
	}
}

func (i *Interpreter) lvalueOf(ctx *ExecContext, v *semantic.Variable, node ast.Node) (*runtime.LValue, error) {
	lv, err := ctx.Frames.LValue(v)
	if err != nil {
		return nil, internalErrorf(node, "%v", err)
	}
	return lv, nil
}

// evaluateLValue resolves an assignable expression to its storage. A nil
// LValue with a nil error means the target could not be reached and a
// diagnostic has been logged.
func (i *Interpreter) evaluateLValue(ctx *ExecContext, node ast.Expression) (*runtime.LValue, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		v, ok := i.tree.SymbolOf(n).(*semantic.Variable)
		if !ok {
			return nil, internalErrorf(n, "%s is not a variable", n.Name)
		}
		return i.lvalueOf(ctx, v, n)
	case *ast.MemberAccessExpression:
		member, ok := n.Member.(*ast.Identifier)
		if !ok {
			return nil, internalErrorf(n, "method call is not assignable")
		}
		obj, err := i.evaluateExpression(ctx, n.Object)
		if err != nil {
			return nil, err
		}
		return i.fieldLValue(ctx, n, obj, member.Name)
	default:
		return nil, internalErrorf(node, "%s is not assignable", node.NodeType())
	}
}

func (i *Interpreter) evaluateAssignment(ctx *ExecContext, expr *ast.AssignmentExpression) (runtime.Value, error) {
	lv, err := i.evaluateLValue(ctx, expr.Left)
	if err != nil {
		return nil, err
	}
	val, err := i.evaluateExpression(ctx, expr.Right)
	if err != nil {
		return nil, err
	}
	if lv != nil {
		lv.Set(val)
	}
	return val, nil
}

func (i *Interpreter) evaluateBinaryExpression(ctx *ExecContext, expr *ast.BinaryExpression) (runtime.Value, error) {
	left, err := i.evaluateExpression(ctx, expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(ctx, expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "+", "-", "*", "/":
		return arithmetic(expr, expr.Operator, i.tree.TypeOf(expr), left, right)
	case "<", "<=", ">", ">=":
		promoted := i.tree.Promote(i.tree.TypeOf(expr.Left), i.tree.TypeOf(expr.Right))
		result, err := compareValues(expr, expr.Operator, promoted, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: result}, nil
	case "==", "!=":
		promoted := i.tree.Promote(i.tree.TypeOf(expr.Left), i.tree.TypeOf(expr.Right))
		equal, err := valuesEqual(expr, promoted, left, right)
		if err != nil {
			return nil, err
		}
		if expr.Operator == "!=" {
			equal = !equal
		}
		return runtime.BoolValue{Val: equal}, nil
	case "&&", "||":
		lb, lok := left.(runtime.BoolValue)
		rb, rok := right.(runtime.BoolValue)
		if !lok || !rok {
			return nil, internalErrorf(expr, "operator %s requires boolean operands, got %s and %s", expr.Operator, kindName(left), kindName(right))
		}
		if expr.Operator == "&&" {
			return runtime.BoolValue{Val: lb.Val && rb.Val}, nil
		}
		return runtime.BoolValue{Val: lb.Val || rb.Val}, nil
	default:
		return nil, internalErrorf(expr, "unsupported binary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateUnaryExpression(ctx *ExecContext, expr *ast.UnaryExpression) (runtime.Value, error) {
	switch expr.Operator {
	case ast.UnaryNot:
		operand, err := i.evaluateExpression(ctx, expr.Operand)
		if err != nil {
			return nil, err
		}
		b, ok := operand.(runtime.BoolValue)
		if !ok {
			return nil, internalErrorf(expr, "operator ! requires a boolean operand, got %s", kindName(operand))
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	case ast.UnaryNegate:
		operand, err := i.evaluateExpression(ctx, expr.Operand)
		if err != nil {
			return nil, err
		}
		kind, err := targetKind(expr, i.tree.TypeOf(expr.Operand), operand, operand)
		if err != nil {
			return nil, err
		}
		return arithmetic(expr, "-", kindType(kind), zeroOf(kind), operand)
	case ast.UnaryIncrement, ast.UnaryDecrement:
		_, updated, err := i.step(ctx, expr, expr.Operator, expr.Operand)
		return updated, err
	default:
		return nil, internalErrorf(expr, "unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluatePostfixExpression(ctx *ExecContext, expr *ast.PostfixExpression) (runtime.Value, error) {
	switch expr.Operator {
	case ast.UnaryIncrement, ast.UnaryDecrement:
		previous, _, err := i.step(ctx, expr, expr.Operator, expr.Operand)
		return previous, err
	default:
		return nil, internalErrorf(expr, "unsupported postfix operator %s", expr.Operator)
	}
}

// step applies ++ or -- to the storage of operand and returns the value
// before and after the update.
func (i *Interpreter) step(ctx *ExecContext, node ast.Node, op ast.UnaryOperator, operand ast.Expression) (runtime.Value, runtime.Value, error) {
	lv, err := i.evaluateLValue(ctx, operand)
	if err != nil {
		return nil, nil, err
	}
	if lv == nil {
		return runtime.Null, runtime.Null, nil
	}
	previous := lv.Get()
	kind, err := targetKind(node, i.tree.TypeOf(operand), previous, previous)
	if err != nil {
		return nil, nil, err
	}
	arith := "+"
	if op == ast.UnaryDecrement {
		arith = "-"
	}
	updated, err := arithmetic(node, arith, kindType(kind), previous, oneOf(kind))
	if err != nil {
		return nil, nil, err
	}
	lv.Set(updated)
	return previous, updated, nil
}
