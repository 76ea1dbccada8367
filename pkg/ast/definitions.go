package ast

// Definitions

// VariableDeclaration declares one variable. A nil VarType stands for `var`
// (the type is inferred from the initializer).
type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name        *Identifier    `json:"name"`
	VarType     TypeExpression `json:"varType,omitempty"`
	Initializer Expression     `json:"initializer,omitempty"`
}

func NewVariableDeclaration(name *Identifier, varType TypeExpression, initializer Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, VarType: varType, Initializer: initializer}
}

type Parameter struct {
	nodeImpl

	Name      *Identifier    `json:"name"`
	ParamType TypeExpression `json:"paramType"`
}

func NewParameter(name *Identifier, paramType TypeExpression) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, ParamType: paramType}
}

// FunctionDeclaration is a named function. Inside a class body it is a
// method, or the constructor when its name matches the class.
type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	ID         *Identifier    `json:"id"`
	Params     []*Parameter   `json:"params"`
	ReturnType TypeExpression `json:"returnType,omitempty"`
	Body       *Block         `json:"body"`
}

func NewFunctionDeclaration(id *Identifier, params []*Parameter, returnType TypeExpression, body *Block) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, ReturnType: returnType, Body: body}
}

// ClassDeclaration holds fields (VariableDeclaration) and methods
// (FunctionDeclaration) in declaration order.
type ClassDeclaration struct {
	nodeImpl
	statementMarker

	ID         *Identifier `json:"id"`
	Superclass *Identifier `json:"superclass,omitempty"`
	Body       []Statement `json:"body"`
}

func NewClassDeclaration(id *Identifier, superclass *Identifier, body []Statement) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), ID: id, Superclass: superclass, Body: body}
}

// Fields returns the field declarations of the class body in program order.
func (c *ClassDeclaration) Fields() []*VariableDeclaration {
	var out []*VariableDeclaration
	for _, stmt := range c.Body {
		if decl, ok := stmt.(*VariableDeclaration); ok {
			out = append(out, decl)
		}
	}
	return out
}

// Methods returns the function declarations of the class body.
func (c *ClassDeclaration) Methods() []*FunctionDeclaration {
	var out []*FunctionDeclaration
	for _, stmt := range c.Body {
		if decl, ok := stmt.(*FunctionDeclaration); ok {
			out = append(out, decl)
		}
	}
	return out
}
