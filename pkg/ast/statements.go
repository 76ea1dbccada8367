package ast

// Program is the root of a syntax tree.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(condition Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Consequent: consequent, Alternate: alternate}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// ForStatement is the three-clause loop. Init holds variable declarations or
// expression statements; a nil Condition loops forever.
type ForStatement struct {
	nodeImpl
	statementMarker

	Init      []Statement  `json:"init,omitempty"`
	Condition Expression   `json:"condition,omitempty"`
	Update    []Expression `json:"update,omitempty"`
	Body      Statement    `json:"body"`
}

func NewForStatement(init []Statement, condition Expression, update []Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Condition: condition, Update: update, Body: body}
}

// ForEachStatement is the enhanced for loop; it parses but does not execute.
type ForEachStatement struct {
	nodeImpl
	statementMarker

	Variable *VariableDeclaration `json:"variable"`
	Iterable Expression           `json:"iterable"`
	Body     Statement            `json:"body"`
}

func NewForEachStatement(variable *VariableDeclaration, iterable Expression, body Statement) *ForEachStatement {
	return &ForEachStatement{nodeImpl: newNodeImpl(NodeForEachStatement), Variable: variable, Iterable: iterable, Body: body}
}

// SwitchStatement parses but does not execute.
type SwitchStatement struct {
	nodeImpl
	statementMarker

	Discriminant Expression  `json:"discriminant"`
	Body         []Statement `json:"body,omitempty"`
}

func NewSwitchStatement(discriminant Expression, body []Statement) *SwitchStatement {
	return &SwitchStatement{nodeImpl: newNodeImpl(NodeSwitchStatement), Discriminant: discriminant, Body: body}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}
