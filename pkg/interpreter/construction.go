package interpreter

import (
	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

// construct allocates an instance of class and initializes its fields one
// ancestor at a time, root class first: every field of the ancestor is set to
// null, then its field declarations run in program order.
func (i *Interpreter) construct(ctx *ExecContext, class *semantic.Class, node ast.Node) (*runtime.ClassInstance, error) {
	ctx.instances++
	inst := runtime.NewClassInstance(class, ctx.instances)
	log.Debugf("construct %s@%d", class.Name, inst.ID)

	ctx.Frames.Push(class.Scope, inst)
	defer ctx.Frames.Pop()

	for _, ancestor := range class.Ancestors() {
		for _, field := range ancestor.Fields {
			inst.Set(field, runtime.Null)
		}
		if ancestor.Decl == nil {
			continue
		}
		for _, decl := range ancestor.Decl.Fields() {
			if decl.Initializer == nil {
				continue
			}
			completion, err := i.executeStatement(ctx, decl)
			if err != nil {
				return nil, err
			}
			if completion.Abrupt() {
				return nil, internalErrorf(node, "field initializer of %s completed with %s", ancestor.Name, completion.Kind)
			}
		}
	}
	return inst, nil
}
