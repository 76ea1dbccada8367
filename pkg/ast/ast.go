package ast

type NodeType string

const (
	NodeProgram               NodeType = "Program"
	NodeBlock                 NodeType = "Block"
	NodeExpressionStatement   NodeType = "ExpressionStatement"
	NodeVariableDeclaration   NodeType = "VariableDeclaration"
	NodeIfStatement           NodeType = "IfStatement"
	NodeWhileStatement        NodeType = "WhileStatement"
	NodeForStatement          NodeType = "ForStatement"
	NodeForEachStatement      NodeType = "ForEachStatement"
	NodeSwitchStatement       NodeType = "SwitchStatement"
	NodeBreakStatement        NodeType = "BreakStatement"
	NodeReturnStatement       NodeType = "ReturnStatement"
	NodeFunctionDeclaration   NodeType = "FunctionDeclaration"
	NodeParameter             NodeType = "Parameter"
	NodeClassDeclaration      NodeType = "ClassDeclaration"
	NodeIdentifier            NodeType = "Identifier"
	NodeIntegerLiteral        NodeType = "IntegerLiteral"
	NodeFloatLiteral          NodeType = "FloatLiteral"
	NodeStringLiteral         NodeType = "StringLiteral"
	NodeCharLiteral           NodeType = "CharLiteral"
	NodeBooleanLiteral        NodeType = "BooleanLiteral"
	NodeNullLiteral           NodeType = "NullLiteral"
	NodeBinaryExpression      NodeType = "BinaryExpression"
	NodeAssignmentExpression  NodeType = "AssignmentExpression"
	NodeUnaryExpression       NodeType = "UnaryExpression"
	NodePostfixExpression     NodeType = "PostfixExpression"
	NodeMemberAccess          NodeType = "MemberAccessExpression"
	NodeFunctionCall          NodeType = "FunctionCall"
	NodeThisExpression        NodeType = "ThisExpression"
	NodeSuperExpression       NodeType = "SuperExpression"
	NodeTypeReference         NodeType = "TypeReference"
	NodeFunctionTypeReference NodeType = "FunctionTypeReference"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type TypeExpression interface {
	Node
	typeExpressionNode()
}

type typeExpressionMarker struct{}

func (typeExpressionMarker) typeExpressionNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type IntegerType string

const (
	IntegerTypeShort IntegerType = "short"
	IntegerTypeInt   IntegerType = "int"
	IntegerTypeLong  IntegerType = "long"
)

type FloatType string

const (
	FloatTypeFloat  FloatType = "float"
	FloatTypeDouble FloatType = "double"
)

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value       int64        `json:"value"`
	IntegerType *IntegerType `json:"integerType,omitempty"`
}

func NewIntegerLiteral(value int64, integerType *IntegerType) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value, IntegerType: integerType}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value     float64    `json:"value"`
	FloatType *FloatType `json:"floatType,omitempty"`
}

func NewFloatLiteral(value float64, floatType *FloatType) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Value: value, FloatType: floatType}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type CharLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewCharLiteral(value string) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

// Operators

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewAssignmentExpression(left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Left: left, Right: right}
}

type UnaryOperator string

const (
	UnaryIncrement UnaryOperator = "++"
	UnaryDecrement UnaryOperator = "--"
	UnaryNot       UnaryOperator = "!"
	UnaryNegate    UnaryOperator = "-"
)

// UnaryExpression is a prefix operator application.
type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type PostfixExpression struct {
	nodeImpl
	expressionMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewPostfixExpression(operator UnaryOperator, operand Expression) *PostfixExpression {
	return &PostfixExpression{nodeImpl: newNodeImpl(NodePostfixExpression), Operator: operator, Operand: operand}
}

// MemberAccessExpression is `object.member`; Member is an *Identifier (field)
// or a *FunctionCall (method invocation).
type MemberAccessExpression struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Member Expression `json:"member"`
}

func NewMemberAccessExpression(object Expression, member Expression) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Member: member}
}

// FunctionCall names its callee directly. A nil Callee stands for the
// `this(...)` / `super(...)` forms selected by Keyword.
type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    *Identifier  `json:"callee,omitempty"`
	Keyword   string       `json:"keyword,omitempty"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}

type SuperExpression struct {
	nodeImpl
	expressionMarker
}

func NewSuperExpression() *SuperExpression {
	return &SuperExpression{nodeImpl: newNodeImpl(NodeSuperExpression)}
}

// Type references

type TypeReference struct {
	nodeImpl
	typeExpressionMarker

	Name string `json:"name"`
}

func NewTypeReference(name string) *TypeReference {
	return &TypeReference{nodeImpl: newNodeImpl(NodeTypeReference), Name: name}
}

type FunctionTypeReference struct {
	nodeImpl
	typeExpressionMarker

	ParamTypes []TypeExpression `json:"paramTypes"`
	ReturnType TypeExpression   `json:"returnType,omitempty"`
}

func NewFunctionTypeReference(params []TypeExpression, returnType TypeExpression) *FunctionTypeReference {
	return &FunctionTypeReference{nodeImpl: newNodeImpl(NodeFunctionTypeReference), ParamTypes: params, ReturnType: returnType}
}
