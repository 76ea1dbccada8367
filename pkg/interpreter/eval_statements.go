package interpreter

import (
	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

func (i *Interpreter) executeStatement(ctx *ExecContext, node ast.Statement) (runtime.Completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		val, err := i.evaluateExpression(ctx, n.Expression)
		if err != nil {
			return runtime.Completion{}, err
		}
		return runtime.NormalCompletion(val), nil
	case *ast.VariableDeclaration:
		return i.executeVariableDeclaration(ctx, n)
	case *ast.Block:
		return i.executeBlock(ctx, n)
	case *ast.IfStatement:
		return i.executeIf(ctx, n)
	case *ast.WhileStatement:
		return i.executeWhile(ctx, n)
	case *ast.ForStatement:
		return i.executeFor(ctx, n)
	case *ast.BreakStatement:
		return runtime.BreakCompletion(), nil
	case *ast.ReturnStatement:
		return i.executeReturn(ctx, n)
	case *ast.FunctionDeclaration, *ast.ClassDeclaration:
		return runtime.NormalCompletion(runtime.Null), nil
	case *ast.ForEachStatement, *ast.SwitchStatement:
		return runtime.NormalCompletion(runtime.Null), nil
	case nil:
		return runtime.NormalCompletion(runtime.Null), nil
	default:
		return runtime.Completion{}, internalErrorf(node, "unsupported statement type: %s", node.NodeType())
	}
}

func (i *Interpreter) executeVariableDeclaration(ctx *ExecContext, decl *ast.VariableDeclaration) (runtime.Completion, error) {
	v, ok := i.tree.SymbolOf(decl).(*semantic.Variable)
	if !ok {
		return runtime.Completion{}, internalErrorf(decl, "declaration of %s has no variable symbol", decl.Name.Name)
	}
	val := runtime.Null
	if decl.Initializer != nil {
		init, err := i.evaluateExpression(ctx, decl.Initializer)
		if err != nil {
			return runtime.Completion{}, err
		}
		val = init
	}
	lv, err := i.lvalueOf(ctx, v, decl)
	if err != nil {
		return runtime.Completion{}, err
	}
	lv.Set(val)
	return runtime.NormalCompletion(val), nil
}

// executeBlock runs the statements of block in a frame of its own, stopping
// at the first break or return. The frame is popped on every path.
func (i *Interpreter) executeBlock(ctx *ExecContext, block *ast.Block) (runtime.Completion, error) {
	scope, ok := i.tree.ScopeOf(block)
	if !ok {
		return runtime.Completion{}, internalErrorf(block, "block has no scope")
	}
	ctx.Frames.Push(scope, runtime.NewLocalStorage())
	defer ctx.Frames.Pop()

	result := runtime.NormalCompletion(runtime.Null)
	for _, stmt := range block.Body {
		completion, err := i.executeStatement(ctx, stmt)
		if err != nil {
			return runtime.Completion{}, err
		}
		result = completion
		if completion.Abrupt() {
			break
		}
	}
	return result, nil
}

func (i *Interpreter) evaluateCondition(ctx *ExecContext, expr ast.Expression) (bool, error) {
	val, err := i.evaluateExpression(ctx, expr)
	if err != nil {
		return false, err
	}
	b, ok := val.(runtime.BoolValue)
	if !ok {
		return false, internalErrorf(expr, "condition evaluated to %s, not a boolean", kindName(val))
	}
	return b.Val, nil
}

func (i *Interpreter) executeIf(ctx *ExecContext, stmt *ast.IfStatement) (runtime.Completion, error) {
	cond, err := i.evaluateCondition(ctx, stmt.Condition)
	if err != nil {
		return runtime.Completion{}, err
	}
	if cond {
		return i.executeStatement(ctx, stmt.Consequent)
	}
	if stmt.Alternate != nil {
		return i.executeStatement(ctx, stmt.Alternate)
	}
	return runtime.NormalCompletion(runtime.Null), nil
}

// executeWhile pushes no frame of its own. Break is consumed here; return
// stops the loop and propagates.
func (i *Interpreter) executeWhile(ctx *ExecContext, loop *ast.WhileStatement) (runtime.Completion, error) {
	for {
		cond, err := i.evaluateCondition(ctx, loop.Condition)
		if err != nil {
			return runtime.Completion{}, err
		}
		if !cond {
			return runtime.NormalCompletion(runtime.Null), nil
		}
		completion, err := i.executeStatement(ctx, loop.Body)
		if err != nil {
			return runtime.Completion{}, err
		}
		switch completion.Kind {
		case runtime.CompletionBreak:
			return runtime.NormalCompletion(runtime.Null), nil
		case runtime.CompletionReturn:
			return completion, nil
		}
	}
}

// executeFor pushes one frame for the whole loop, so variables declared by
// the initializer are shared by every iteration.
func (i *Interpreter) executeFor(ctx *ExecContext, loop *ast.ForStatement) (runtime.Completion, error) {
	scope, ok := i.tree.ScopeOf(loop)
	if !ok {
		return runtime.Completion{}, internalErrorf(loop, "for loop has no scope")
	}
	ctx.Frames.Push(scope, runtime.NewLocalStorage())
	defer ctx.Frames.Pop()

	for _, init := range loop.Init {
		if _, err := i.executeStatement(ctx, init); err != nil {
			return runtime.Completion{}, err
		}
	}
	for {
		if loop.Condition != nil {
			cond, err := i.evaluateCondition(ctx, loop.Condition)
			if err != nil {
				return runtime.Completion{}, err
			}
			if !cond {
				break
			}
		}
		completion, err := i.executeStatement(ctx, loop.Body)
		if err != nil {
			return runtime.Completion{}, err
		}
		if completion.Kind == runtime.CompletionBreak {
			break
		}
		if completion.Kind == runtime.CompletionReturn {
			return completion, nil
		}
		for _, update := range loop.Update {
			if _, err := i.evaluateExpression(ctx, update); err != nil {
				return runtime.Completion{}, err
			}
		}
	}
	return runtime.NormalCompletion(runtime.Null), nil
}

func (i *Interpreter) executeReturn(ctx *ExecContext, stmt *ast.ReturnStatement) (runtime.Completion, error) {
	val := runtime.Null
	if stmt.Argument != nil {
		result, err := i.evaluateExpression(ctx, stmt.Argument)
		if err != nil {
			return runtime.Completion{}, err
		}
		val = result
	}
	if closure, ok := val.(*runtime.Closure); ok {
		i.captureFreeVariables(ctx, closure)
	}
	return runtime.ReturnCompletion(val), nil
}

// captureFreeVariables copies the current value of every free variable of
// the closure's function into the closure. This happens when the closure is
// returned, so it sees every assignment made before the return statement.
// Variables that cannot be reached or hold null are left to frame lookup.
func (i *Interpreter) captureFreeVariables(ctx *ExecContext, closure *runtime.Closure) {
	for _, v := range i.tree.FreeVariablesOf(closure.Function) {
		lv, err := ctx.Frames.LValue(v)
		if err != nil {
			continue
		}
		val := lv.Get()
		if runtime.IsNull(val) {
			continue
		}
		closure.Set(v, val)
	}
}
