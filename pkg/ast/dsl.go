package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return IntTyped(value, nil)
}

func IntTyped(value int64, integerType *IntegerType) *IntegerLiteral {
	return NewIntegerLiteral(value, integerType)
}

func Long(value int64) *IntegerLiteral {
	t := IntegerTypeLong
	return NewIntegerLiteral(value, &t)
}

func Short(value int64) *IntegerLiteral {
	t := IntegerTypeShort
	return NewIntegerLiteral(value, &t)
}

func Flt(value float64) *FloatLiteral {
	return FltTyped(value, nil)
}

func FltTyped(value float64, floatType *FloatType) *FloatLiteral {
	return NewFloatLiteral(value, floatType)
}

func Dbl(value float64) *FloatLiteral {
	t := FloatTypeDouble
	return NewFloatLiteral(value, &t)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Chr(value string) *CharLiteral {
	return NewCharLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

// Type helpers.

func Ty(name string) *TypeReference {
	return NewTypeReference(name)
}

func FnTy(params []TypeExpression, returnType TypeExpression) *FunctionTypeReference {
	return NewFunctionTypeReference(params, returnType)
}

// Expression helpers.

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Assign(left, right Expression) *AssignmentExpression {
	return NewAssignmentExpression(left, right)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNot, operand)
}

func Neg(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryNegate, operand)
}

func PreInc(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryIncrement, operand)
}

func PreDec(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryDecrement, operand)
}

func PostInc(operand Expression) *PostfixExpression {
	return NewPostfixExpression(UnaryIncrement, operand)
}

func PostDec(operand Expression) *PostfixExpression {
	return NewPostfixExpression(UnaryDecrement, operand)
}

func Call(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Member(object Expression, member Expression) *MemberAccessExpression {
	return NewMemberAccessExpression(object, member)
}

func Field(object Expression, name string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(name))
}

func MethodCall(object Expression, name string, args ...Expression) *MemberAccessExpression {
	return NewMemberAccessExpression(object, Call(name, args...))
}

func This() *ThisExpression {
	return NewThisExpression()
}

func Super() *SuperExpression {
	return NewSuperExpression()
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Println(args ...Expression) *ExpressionStatement {
	return Expr(Call("println", args...))
}

// Var declares a variable whose type is inferred from its initializer.
func Var(name string, initializer Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), nil, initializer)
}

// Decl declares a variable with an explicit type.
func Decl(typeName string, name string, initializer Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), Ty(typeName), initializer)
}

func Blk(body ...Statement) *Block {
	return NewBlock(body)
}

func If(condition Expression, consequent Statement) *IfStatement {
	return NewIfStatement(condition, consequent, nil)
}

func IfElse(condition Expression, consequent, alternate Statement) *IfStatement {
	return NewIfStatement(condition, consequent, alternate)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func For(init []Statement, condition Expression, update []Expression, body Statement) *ForStatement {
	return NewForStatement(init, condition, update, body)
}

func Break() *BreakStatement {
	return NewBreakStatement()
}

func Return(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

// Definition helpers.

func Param(name string, paramType TypeExpression) *Parameter {
	return NewParameter(ID(name), paramType)
}

func Fn(name string, params []*Parameter, returnType TypeExpression, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, returnType, NewBlock(body))
}

func Class(name string, superclass string, body ...Statement) *ClassDeclaration {
	var super *Identifier
	if superclass != "" {
		super = ID(superclass)
	}
	return NewClassDeclaration(ID(name), super, body)
}

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}
