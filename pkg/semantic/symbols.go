package semantic

import "playscript/interpreter-go/pkg/ast"

// Symbol is a named entity produced by analysis: *Variable, *Function or
// *Class. Symbols are compared by pointer identity.
type Symbol interface {
	SymbolName() string
	symbolNode()
}

type Variable struct {
	Name  string
	Type  Type
	Scope ScopeID
	Decl  ast.Node
}

func (v *Variable) SymbolName() string { return v.Name }
func (*Variable) symbolNode()          {}

func (v *Variable) String() string { return "variable " + v.Name }

// Function is a free function, a method or a constructor. Scope is the
// function's own scope (parameters live there); Enclosing is where it was
// declared.
type Function struct {
	Name       string
	Scope      ScopeID
	Enclosing  ScopeID
	Params     []*Variable
	ReturnType Type
	Class      *Class
	Decl       *ast.FunctionDeclaration
}

func (f *Function) SymbolName() string { return f.Name }
func (*Function) symbolNode()          {}

func (f *Function) String() string { return "function " + f.Name }

func (f *Function) ParamTypes() []Type {
	types := make([]Type, len(f.Params))
	for i, p := range f.Params {
		types[i] = p.Type
	}
	return types
}

// Type returns the function type of the function as a value.
func (f *Function) Type() *FunctionType {
	return &FunctionType{ParamTypes: f.ParamTypes(), ReturnType: f.ReturnType}
}

// IsConstructor reports whether f is declared in a class body under the
// class's own name.
func (f *Function) IsConstructor() bool {
	return f.Class != nil && f.Name == f.Class.Name
}

// IsMethod reports whether f is an instance method subject to virtual
// dispatch.
func (f *Function) IsMethod() bool {
	return f.Class != nil && f.Name != f.Class.Name
}

func (f *Function) matches(name string, paramTypes []Type) bool {
	return f.Name == name && sameTypes(f.ParamTypes(), paramTypes)
}

func (f *Function) accepts(argTypes []Type) bool {
	if len(f.Params) != len(argTypes) {
		return false
	}
	for i, p := range f.Params {
		if !Assignable(argTypes[i], p.Type) {
			return false
		}
	}
	return true
}

// Class is both a symbol and the static type of its instances.
type Class struct {
	Name      string
	Parent    *Class
	Scope     ScopeID
	Enclosing ScopeID
	Fields    []*Variable
	Methods   []*Function
	Decl      *ast.ClassDeclaration
}

func (c *Class) SymbolName() string { return c.Name }
func (*Class) symbolNode()          {}
func (c *Class) TypeName() string   { return c.Name }

func (c *Class) String() string { return "class " + c.Name }

// Ancestors returns the ancestor chain root-first, ending with c.
func (c *Class) Ancestors() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsSubclassOf reports whether other is c or one of its ancestors.
func (c *Class) IsSubclassOf(other *Class) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// LookupField finds the field named name, most derived declaration first.
func (c *Class) LookupField(name string) *Variable {
	for cur := c; cur != nil; cur = cur.Parent {
		for _, field := range cur.Fields {
			if field.Name == name {
				return field
			}
		}
	}
	return nil
}

// LookupMethod finds the method with the exact signature, most derived
// declaration first. Constructors are not methods.
func (c *Class) LookupMethod(name string, paramTypes []Type) *Function {
	for cur := c; cur != nil; cur = cur.Parent {
		for _, method := range cur.Methods {
			if method.IsMethod() && method.matches(name, paramTypes) {
				return method
			}
		}
	}
	return nil
}

// ResolveMethod picks the method a call with the given argument types
// selects: an exact signature first, then the first applicable overload.
func (c *Class) ResolveMethod(name string, argTypes []Type) *Function {
	if fn := c.LookupMethod(name, argTypes); fn != nil {
		return fn
	}
	for cur := c; cur != nil; cur = cur.Parent {
		for _, method := range cur.Methods {
			if method.IsMethod() && method.Name == name && method.accepts(argTypes) {
				return method
			}
		}
	}
	return nil
}

// Constructor returns the explicit constructor accepting argTypes, if any.
func (c *Class) Constructor(argTypes []Type) *Function {
	var fallback *Function
	for _, method := range c.Methods {
		if !method.IsConstructor() {
			continue
		}
		if sameTypes(method.ParamTypes(), argTypes) {
			return method
		}
		if fallback == nil && method.accepts(argTypes) {
			fallback = method
		}
	}
	return fallback
}

// HasConstructor reports whether the class declares any constructor.
func (c *Class) HasConstructor() bool {
	for _, method := range c.Methods {
		if method.IsConstructor() {
			return true
		}
	}
	return false
}
