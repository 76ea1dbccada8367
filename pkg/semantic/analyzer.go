package semantic

import (
	"fmt"
	"strings"

	"playscript/interpreter-go/pkg/ast"
)

// BuiltinPrintln is resolved by the interpreter, not by analysis.
const BuiltinPrintln = "println"

type analyzer struct {
	tree          *AnnotatedTree
	scopes        *Scopes
	functionStack []*Function
	loopDepth     int
	inferReturn   map[*Function]bool
}

// Analyze resolves every node of program to a scope, a symbol and a static
// type, and computes the free variables of each function. It fails only on a
// nil program; language errors are recorded as diagnostics on the tree.
func Analyze(program *ast.Program) (*AnnotatedTree, error) {
	if program == nil {
		return nil, fmt.Errorf("semantic: program is nil")
	}
	tree := NewAnnotatedTree(program)
	a := &analyzer{
		tree:        tree,
		scopes:      tree.Scopes,
		inferReturn: make(map[*Function]bool),
	}
	tree.Global = a.scopes.New(NoScope, ScopeProgram, program)
	tree.SetScope(program, tree.Global)

	a.collectDeclarations(tree.Global, program.Body)
	a.resolveClasses()
	a.resolveSignatures()
	for _, stmt := range program.Body {
		a.checkStatement(tree.Global, stmt)
	}
	log.Debugf("analyzed program: %d scopes, %d classes, %d functions, %d diagnostics",
		a.scopes.Len(), len(tree.Classes), len(tree.Functions), len(tree.Diagnostics()))
	return tree, nil
}

// Declarations

func (a *analyzer) collectDeclarations(scope ScopeID, stmts []ast.Statement) {
	for _, stmt := range stmts {
		a.collectNested(scope, stmt)
	}
}

func (a *analyzer) collectNested(scope ScopeID, stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.FunctionDeclaration:
		a.declareFunction(scope, s, nil)
	case *ast.ClassDeclaration:
		a.declareClass(scope, s)
	case *ast.Block:
		id := a.scopes.New(scope, ScopeBlock, s)
		a.tree.SetScope(s, id)
		a.collectDeclarations(id, s.Body)
	case *ast.IfStatement:
		a.collectNested(scope, s.Consequent)
		a.collectNested(scope, s.Alternate)
	case *ast.WhileStatement:
		a.collectNested(scope, s.Body)
	case *ast.ForStatement:
		id := a.scopes.New(scope, ScopeBlock, s)
		a.tree.SetScope(s, id)
		a.collectNested(id, s.Body)
	}
}

func (a *analyzer) declareFunction(scope ScopeID, decl *ast.FunctionDeclaration, class *Class) *Function {
	fn := &Function{Name: identName(decl.ID), Enclosing: scope, Class: class, Decl: decl}
	fn.Scope = a.scopes.New(scope, ScopeFunction, decl)
	a.scopes.SetOwner(fn.Scope, fn)
	a.tree.SetScope(decl, fn.Scope)
	a.tree.SetSymbol(decl, fn)
	a.scopes.Declare(scope, fn)
	a.tree.Functions = append(a.tree.Functions, fn)
	if decl.Body != nil {
		body := a.scopes.New(fn.Scope, ScopeBlock, decl.Body)
		a.tree.SetScope(decl.Body, body)
		a.collectDeclarations(body, decl.Body.Body)
	}
	return fn
}

func (a *analyzer) declareClass(scope ScopeID, decl *ast.ClassDeclaration) {
	name := identName(decl.ID)
	if existing := a.lookupIn(scope, name, isClass); existing != nil {
		a.tree.errorf(decl, "class %s is already declared", name)
	}
	cls := &Class{Name: name, Enclosing: scope, Decl: decl}
	cls.Scope = a.scopes.New(scope, ScopeClass, decl)
	a.scopes.SetOwner(cls.Scope, cls)
	a.tree.SetScope(decl, cls.Scope)
	a.tree.SetSymbol(decl, cls)
	a.scopes.Declare(scope, cls)
	a.tree.Classes = append(a.tree.Classes, cls)
	for _, method := range decl.Methods() {
		cls.Methods = append(cls.Methods, a.declareFunction(cls.Scope, method, cls))
	}
}

func (a *analyzer) resolveClasses() {
	for _, cls := range a.tree.Classes {
		if cls.Decl.Superclass == nil {
			continue
		}
		parentName := cls.Decl.Superclass.Name
		parent := a.lookupClass(cls.Enclosing, parentName)
		switch {
		case parent == nil:
			a.tree.errorf(cls.Decl.Superclass, "unknown superclass %s of class %s", parentName, cls.Name)
		case parent.IsSubclassOf(cls):
			a.tree.errorf(cls.Decl.Superclass, "class %s cannot extend %s: inheritance cycle", cls.Name, parentName)
		default:
			cls.Parent = parent
			a.tree.SetSymbol(cls.Decl.Superclass, parent)
		}
	}
	for _, cls := range a.tree.Classes {
		for _, field := range cls.Decl.Fields() {
			v := &Variable{
				Name:  identName(field.Name),
				Type:  a.resolveType(cls.Enclosing, field.VarType),
				Scope: cls.Scope,
				Decl:  field,
			}
			a.scopes.Declare(cls.Scope, v)
			cls.Fields = append(cls.Fields, v)
			a.tree.SetSymbol(field, v)
			a.tree.SetSymbol(field.Name, v)
		}
	}
}

func (a *analyzer) resolveSignatures() {
	for _, fn := range a.tree.Functions {
		for _, param := range fn.Decl.Params {
			if param == nil {
				continue
			}
			v := &Variable{
				Name:  identName(param.Name),
				Type:  a.resolveType(fn.Enclosing, param.ParamType),
				Scope: fn.Scope,
				Decl:  param,
			}
			a.scopes.Declare(fn.Scope, v)
			fn.Params = append(fn.Params, v)
			a.tree.SetSymbol(param, v)
			a.tree.SetSymbol(param.Name, v)
		}
		switch {
		case fn.Decl.ReturnType != nil:
			fn.ReturnType = a.resolveType(fn.Enclosing, fn.Decl.ReturnType)
		case fn.IsConstructor():
			fn.ReturnType = fn.Class
		default:
			a.inferReturn[fn] = true
		}
	}
}

// resolveType maps a type expression to a Type; a nil expression (`var`)
// resolves to Unknown until an initializer is seen.
func (a *analyzer) resolveType(scope ScopeID, expr ast.TypeExpression) Type {
	switch t := expr.(type) {
	case nil:
		return Unknown
	case *ast.TypeReference:
		if prim, ok := PrimitiveByName(t.Name); ok {
			return prim
		}
		if cls := a.lookupClass(scope, t.Name); cls != nil {
			return cls
		}
		a.tree.errorf(t, "unknown type %s", t.Name)
		return Unknown
	case *ast.FunctionTypeReference:
		fnType := &FunctionType{ReturnType: Void}
		for _, param := range t.ParamTypes {
			fnType.ParamTypes = append(fnType.ParamTypes, a.resolveType(scope, param))
		}
		if t.ReturnType != nil {
			fnType.ReturnType = a.resolveType(scope, t.ReturnType)
		}
		return fnType
	default:
		a.tree.errorf(expr, "unsupported type expression %s", expr.NodeType())
		return Unknown
	}
}

// Lookup

func isVariable(sym Symbol) bool {
	_, ok := sym.(*Variable)
	return ok
}

func isClass(sym Symbol) bool {
	_, ok := sym.(*Class)
	return ok
}

func isFunction(sym Symbol) bool {
	_, ok := sym.(*Function)
	return ok
}

func (a *analyzer) lookup(scope ScopeID, name string, accept func(Symbol) bool) Symbol {
	for cur := scope; cur != NoScope; cur = a.scopes.Parent(cur) {
		if sym := a.lookupIn(cur, name, accept); sym != nil {
			return sym
		}
	}
	return nil
}

// lookupIn searches one scope, latest declaration first. Class scopes also
// search the members of every ancestor class.
func (a *analyzer) lookupIn(scope ScopeID, name string, accept func(Symbol) bool) Symbol {
	if sym := lastMatch(a.scopes.Symbols(scope), name, accept); sym != nil {
		return sym
	}
	if a.scopes.Kind(scope) != ScopeClass {
		return nil
	}
	cls := a.scopes.OwnerClass(scope)
	if cls == nil {
		return nil
	}
	for anc := cls.Parent; anc != nil; anc = anc.Parent {
		if sym := lastMatch(a.scopes.Symbols(anc.Scope), name, accept); sym != nil {
			return sym
		}
	}
	return nil
}

func lastMatch(symbols []Symbol, name string, accept func(Symbol) bool) Symbol {
	for i := len(symbols) - 1; i >= 0; i-- {
		if symbols[i].SymbolName() == name && accept(symbols[i]) {
			return symbols[i]
		}
	}
	return nil
}

func (a *analyzer) lookupVariable(scope ScopeID, name string) *Variable {
	v, _ := a.lookup(scope, name, isVariable).(*Variable)
	return v
}

func (a *analyzer) lookupClass(scope ScopeID, name string) *Class {
	cls, _ := a.lookup(scope, name, isClass).(*Class)
	return cls
}

// lookupFunction resolves an overloaded call: in the nearest scope holding an
// applicable overload, an exact signature match wins over a widening one.
func (a *analyzer) lookupFunction(scope ScopeID, name string, argTypes []Type) *Function {
	for cur := scope; cur != NoScope; cur = a.scopes.Parent(cur) {
		candidates := a.functionsIn(cur, name)
		for _, fn := range candidates {
			if sameTypes(fn.ParamTypes(), argTypes) {
				return fn
			}
		}
		for _, fn := range candidates {
			if fn.accepts(argTypes) {
				return fn
			}
		}
	}
	return nil
}

func (a *analyzer) functionsIn(scope ScopeID, name string) []*Function {
	var out []*Function
	collect := func(symbols []Symbol) {
		for _, sym := range symbols {
			if fn, ok := sym.(*Function); ok && fn.Name == name {
				out = append(out, fn)
			}
		}
	}
	collect(a.scopes.Symbols(scope))
	if a.scopes.Kind(scope) == ScopeClass {
		if cls := a.scopes.OwnerClass(scope); cls != nil {
			for anc := cls.Parent; anc != nil; anc = anc.Parent {
				collect(a.scopes.Symbols(anc.Scope))
			}
		}
	}
	return out
}

// noteReference records v as free in every function between the referencing
// scope and the scope declaring v. Class members are reached through the
// receiver and are never captured.
func (a *analyzer) noteReference(scope ScopeID, v *Variable) {
	if a.scopes.Kind(v.Scope) == ScopeClass {
		return
	}
	for cur := scope; cur != NoScope && cur != v.Scope; cur = a.scopes.Parent(cur) {
		if a.scopes.Kind(cur) != ScopeFunction {
			continue
		}
		if fn, ok := a.scopes.Owner(cur).(*Function); ok {
			a.tree.AddFreeVariable(fn, v)
		}
	}
}

// Statements

func (a *analyzer) checkStatement(scope ScopeID, stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.ExpressionStatement:
		a.checkExpression(scope, s.Expression)
	case *ast.VariableDeclaration:
		a.checkVariableDeclaration(scope, s)
	case *ast.Block:
		id, ok := a.tree.ScopeOf(s)
		if !ok {
			id = a.scopes.New(scope, ScopeBlock, s)
			a.tree.SetScope(s, id)
		}
		for _, inner := range s.Body {
			a.checkStatement(id, inner)
		}
	case *ast.IfStatement:
		a.expectBoolean(scope, s.Condition, "if condition")
		a.checkStatement(scope, s.Consequent)
		a.checkStatement(scope, s.Alternate)
	case *ast.WhileStatement:
		a.expectBoolean(scope, s.Condition, "while condition")
		a.loopDepth++
		a.checkStatement(scope, s.Body)
		a.loopDepth--
	case *ast.ForStatement:
		a.checkFor(scope, s)
	case *ast.ForEachStatement:
		a.tree.warnf(s, "enhanced for loops are not supported; the loop is skipped")
	case *ast.SwitchStatement:
		a.tree.warnf(s, "switch statements are not supported; the statement is skipped")
	case *ast.BreakStatement:
		if a.loopDepth == 0 {
			a.tree.errorf(s, "break outside of a loop")
		}
	case *ast.ReturnStatement:
		a.checkReturn(scope, s)
	case *ast.FunctionDeclaration:
		if fn, ok := a.tree.SymbolOf(s).(*Function); ok {
			a.checkFunction(fn)
		}
	case *ast.ClassDeclaration:
		if cls, ok := a.tree.SymbolOf(s).(*Class); ok {
			a.checkClass(cls)
		}
	default:
		a.tree.errorf(stmt, "unsupported statement %s", stmt.NodeType())
	}
}

func (a *analyzer) checkVariableDeclaration(scope ScopeID, decl *ast.VariableDeclaration) {
	declared := a.resolveType(scope, decl.VarType)
	typ := declared
	if decl.Initializer != nil {
		initType := a.checkExpression(scope, decl.Initializer)
		if declared == Unknown {
			typ = initType
		} else if !Assignable(initType, declared) {
			a.tree.warnf(decl, "cannot initialize %s %s with %s", declared.TypeName(), identName(decl.Name), initType.TypeName())
		}
	}
	if typ == Null || typ == Void {
		typ = Unknown
	}
	v := &Variable{Name: identName(decl.Name), Type: typ, Scope: scope, Decl: decl}
	a.scopes.Declare(scope, v)
	a.tree.SetSymbol(decl, v)
	a.tree.SetSymbol(decl.Name, v)
	a.tree.SetType(decl, typ)
}

func (a *analyzer) checkFor(scope ScopeID, loop *ast.ForStatement) {
	id, ok := a.tree.ScopeOf(loop)
	if !ok {
		id = a.scopes.New(scope, ScopeBlock, loop)
		a.tree.SetScope(loop, id)
	}
	for _, init := range loop.Init {
		a.checkStatement(id, init)
	}
	if loop.Condition != nil {
		a.expectBoolean(id, loop.Condition, "for condition")
	}
	a.loopDepth++
	a.checkStatement(id, loop.Body)
	a.loopDepth--
	for _, update := range loop.Update {
		a.checkExpression(id, update)
	}
}

func (a *analyzer) checkReturn(scope ScopeID, ret *ast.ReturnStatement) {
	typ := Void
	if ret.Argument != nil {
		typ = a.checkExpression(scope, ret.Argument)
	}
	if len(a.functionStack) == 0 {
		a.tree.errorf(ret, "return outside of a function")
		return
	}
	fn := a.functionStack[len(a.functionStack)-1]
	if a.inferReturn[fn] && fn.ReturnType == nil && typ != Null {
		fn.ReturnType = typ
	}
}

func (a *analyzer) checkFunction(fn *Function) {
	savedLoop := a.loopDepth
	a.loopDepth = 0
	a.functionStack = append(a.functionStack, fn)
	if fn.Decl.Body != nil {
		a.checkStatement(fn.Scope, fn.Decl.Body)
	}
	a.functionStack = a.functionStack[:len(a.functionStack)-1]
	a.loopDepth = savedLoop
	if fn.ReturnType == nil {
		fn.ReturnType = Void
	}
	a.tree.SetType(fn.Decl, fn.Type())
}

func (a *analyzer) checkClass(cls *Class) {
	for _, stmt := range cls.Decl.Body {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			field, ok := a.tree.SymbolOf(s).(*Variable)
			if !ok {
				continue
			}
			if s.Initializer != nil {
				initType := a.checkExpression(cls.Scope, s.Initializer)
				if field.Type == Unknown && initType != Null {
					field.Type = initType
				}
			}
			a.tree.SetType(s, field.Type)
		case *ast.FunctionDeclaration:
			if fn, ok := a.tree.SymbolOf(s).(*Function); ok {
				a.checkFunction(fn)
			}
		default:
			a.tree.errorf(stmt, "unexpected %s in body of class %s", stmt.NodeType(), cls.Name)
		}
	}
}

func (a *analyzer) expectBoolean(scope ScopeID, expr ast.Expression, context string) {
	typ := a.checkExpression(scope, expr)
	if typ != Boolean && typ != Unknown {
		a.tree.errorf(expr, "%s must be boolean, got %s", context, typ.TypeName())
	}
}

// Expressions

func (a *analyzer) checkExpression(scope ScopeID, expr ast.Expression) Type {
	if expr == nil {
		return Void
	}
	typ := a.inferExpression(scope, expr)
	if typ == nil {
		typ = Unknown
	}
	a.tree.SetType(expr, typ)
	return typ
}

func (a *analyzer) inferExpression(scope ScopeID, expr ast.Expression) Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		if e.IntegerType == nil {
			return Int
		}
		switch *e.IntegerType {
		case ast.IntegerTypeShort:
			return Short
		case ast.IntegerTypeLong:
			return Long
		default:
			return Int
		}
	case *ast.FloatLiteral:
		if e.FloatType != nil && *e.FloatType == ast.FloatTypeDouble {
			return Double
		}
		return Float
	case *ast.StringLiteral:
		return String
	case *ast.CharLiteral:
		return Char
	case *ast.BooleanLiteral:
		return Boolean
	case *ast.NullLiteral:
		return Null
	case *ast.Identifier:
		return a.checkIdentifier(scope, e)
	case *ast.BinaryExpression:
		return a.checkBinary(scope, e)
	case *ast.AssignmentExpression:
		return a.checkAssignment(scope, e)
	case *ast.UnaryExpression:
		return a.checkUnary(scope, e, e.Operator, e.Operand)
	case *ast.PostfixExpression:
		return a.checkUnary(scope, e, e.Operator, e.Operand)
	case *ast.MemberAccessExpression:
		return a.checkMember(scope, e)
	case *ast.FunctionCall:
		return a.checkCall(scope, e)
	case *ast.ThisExpression, *ast.SuperExpression:
		return Unknown
	default:
		a.tree.errorf(expr, "unsupported expression %s", expr.NodeType())
		return Unknown
	}
}

func (a *analyzer) checkIdentifier(scope ScopeID, id *ast.Identifier) Type {
	if v := a.lookupVariable(scope, id.Name); v != nil {
		a.noteReference(scope, v)
		a.tree.SetSymbol(id, v)
		return v.Type
	}
	if fn, ok := a.lookup(scope, id.Name, isFunction).(*Function); ok {
		a.tree.SetSymbol(id, fn)
		return fn.Type()
	}
	if cls := a.lookupClass(scope, id.Name); cls != nil {
		a.tree.errorf(id, "class %s cannot be used as a value", id.Name)
		return Unknown
	}
	a.tree.errorf(id, "undefined variable %s", id.Name)
	return Unknown
}

func (a *analyzer) checkBinary(scope ScopeID, expr *ast.BinaryExpression) Type {
	left := a.checkExpression(scope, expr.Left)
	right := a.checkExpression(scope, expr.Right)
	unknown := left == Unknown || right == Unknown
	switch expr.Operator {
	case "+":
		if left == String || right == String {
			return String
		}
		fallthrough
	case "-", "*", "/":
		if unknown {
			return Unknown
		}
		if IsNumeric(left) && IsNumeric(right) {
			return Promote(left, right)
		}
		a.tree.errorf(expr, "operator %s is not defined for %s and %s", expr.Operator, left.TypeName(), right.TypeName())
		return Unknown
	case "<", "<=", ">", ">=":
		if !unknown && !(IsNumeric(left) && IsNumeric(right)) {
			a.tree.errorf(expr, "operator %s requires numeric operands, got %s and %s", expr.Operator, left.TypeName(), right.TypeName())
		}
		return Boolean
	case "==", "!=":
		return Boolean
	case "&&", "||":
		if (left != Boolean && left != Unknown) || (right != Boolean && right != Unknown) {
			a.tree.errorf(expr, "operator %s requires boolean operands, got %s and %s", expr.Operator, left.TypeName(), right.TypeName())
		}
		return Boolean
	default:
		a.tree.errorf(expr, "unsupported operator %s", expr.Operator)
		return Unknown
	}
}

// isAssignable reports whether expr denotes storage: a variable or a field.
func (a *analyzer) isAssignable(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Identifier:
		return isVariable(a.tree.SymbolOf(e))
	case *ast.MemberAccessExpression:
		if _, ok := e.Member.(*ast.Identifier); !ok {
			return false
		}
		return isVariable(a.tree.SymbolOf(e)) || a.tree.TypeOf(e.Object) == Unknown
	}
	return false
}

func (a *analyzer) checkAssignment(scope ScopeID, expr *ast.AssignmentExpression) Type {
	left := a.checkExpression(scope, expr.Left)
	right := a.checkExpression(scope, expr.Right)
	if !a.isAssignable(expr.Left) {
		a.tree.errorf(expr, "left side of assignment is not a variable or field")
		return right
	}
	if v, ok := a.tree.SymbolOf(expr.Left).(*Variable); ok && v.Type == Unknown && right != Null {
		v.Type = right
		return right
	}
	if !Assignable(right, left) {
		a.tree.warnf(expr, "cannot assign %s to %s", right.TypeName(), left.TypeName())
	}
	return left
}

func (a *analyzer) checkUnary(scope ScopeID, node ast.Expression, op ast.UnaryOperator, operand ast.Expression) Type {
	typ := a.checkExpression(scope, operand)
	switch op {
	case ast.UnaryNot:
		if typ != Boolean && typ != Unknown {
			a.tree.errorf(node, "operator ! requires a boolean operand, got %s", typ.TypeName())
		}
		return Boolean
	case ast.UnaryNegate:
		if typ != Unknown && !IsNumeric(typ) {
			a.tree.errorf(node, "operator - requires a numeric operand, got %s", typ.TypeName())
		}
		return typ
	case ast.UnaryIncrement, ast.UnaryDecrement:
		if !a.isAssignable(operand) {
			a.tree.errorf(node, "operand of %s must be a variable or field", op)
		}
		if typ != Unknown && !IsNumeric(typ) {
			a.tree.errorf(node, "operator %s requires a numeric operand, got %s", op, typ.TypeName())
		}
		return typ
	default:
		a.tree.errorf(node, "unsupported unary operator %s", op)
		return Unknown
	}
}

func (a *analyzer) checkArguments(scope ScopeID, args []ast.Expression) []Type {
	types := make([]Type, len(args))
	for i, arg := range args {
		types[i] = a.checkExpression(scope, arg)
	}
	return types
}

func (a *analyzer) checkMember(scope ScopeID, expr *ast.MemberAccessExpression) Type {
	objType := a.checkExpression(scope, expr.Object)
	cls, isInstance := objType.(*Class)
	switch member := expr.Member.(type) {
	case *ast.Identifier:
		if !isInstance {
			if objType != Unknown {
				a.tree.errorf(expr, "cannot access field %s on %s", member.Name, objType.TypeName())
			}
			return Unknown
		}
		field := cls.LookupField(member.Name)
		if field == nil {
			a.tree.errorf(expr, "class %s has no field %s", cls.Name, member.Name)
			return Unknown
		}
		a.tree.SetSymbol(expr, field)
		a.tree.SetSymbol(member, field)
		a.tree.SetType(member, field.Type)
		return field.Type
	case *ast.FunctionCall:
		argTypes := a.checkArguments(scope, member.Arguments)
		name := ""
		if member.Callee != nil {
			name = member.Callee.Name
		}
		if !isInstance {
			if objType != Unknown {
				a.tree.errorf(expr, "cannot call method %s on %s", name, objType.TypeName())
			}
			a.tree.SetType(member, Unknown)
			return Unknown
		}
		method := cls.ResolveMethod(name, argTypes)
		if method == nil {
			a.tree.warnf(expr, "class %s has no method %s(%s)", cls.Name, name, typeList(argTypes))
			a.tree.SetType(member, Unknown)
			return Unknown
		}
		a.tree.SetSymbol(expr, method)
		a.tree.SetSymbol(member, method)
		typ := returnTypeOf(method)
		a.tree.SetType(member, typ)
		return typ
	default:
		a.tree.errorf(expr, "unsupported member %T", expr.Member)
		return Unknown
	}
}

// checkCall resolves an unqualified call: a function, then a function-typed
// variable, then a class (explicit constructor or bare construction). The
// println builtin and unknown names stay unresolved for the interpreter.
func (a *analyzer) checkCall(scope ScopeID, call *ast.FunctionCall) Type {
	argTypes := a.checkArguments(scope, call.Arguments)
	if call.Callee == nil {
		return Unknown
	}
	name := call.Callee.Name
	if fn := a.lookupFunction(scope, name, argTypes); fn != nil {
		a.tree.SetSymbol(call, fn)
		a.tree.SetSymbol(call.Callee, fn)
		return returnTypeOf(fn)
	}
	if v := a.lookupVariable(scope, name); v != nil {
		if fnType, ok := v.Type.(*FunctionType); ok || v.Type == Unknown {
			a.noteReference(scope, v)
			a.tree.SetSymbol(call, v)
			a.tree.SetSymbol(call.Callee, v)
			if ok && fnType.ReturnType != nil {
				return fnType.ReturnType
			}
			return Unknown
		}
	}
	if cls := a.lookupClass(scope, name); cls != nil {
		if ctor := cls.Constructor(argTypes); ctor != nil {
			a.tree.SetSymbol(call, ctor)
			a.tree.SetSymbol(call.Callee, ctor)
			return cls
		}
		if len(argTypes) > 0 {
			a.tree.warnf(call, "class %s has no constructor accepting (%s); arguments are ignored", cls.Name, typeList(argTypes))
		}
		a.tree.SetSymbol(call, cls)
		a.tree.SetSymbol(call.Callee, cls)
		return cls
	}
	if name == BuiltinPrintln {
		return Void
	}
	a.tree.warnf(call, "unknown function %s(%s)", name, typeList(argTypes))
	return Unknown
}

func returnTypeOf(fn *Function) Type {
	if fn.IsConstructor() {
		return fn.Class
	}
	if fn.ReturnType == nil {
		return Unknown
	}
	return fn.ReturnType
}

func typeList(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = typeName(t)
	}
	return strings.Join(parts, ", ")
}

func identName(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}
