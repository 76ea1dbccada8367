package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"playscript/interpreter-go/pkg/ast"
)

// LoadProgram reads a JSON-encoded syntax tree from path.
func LoadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	program, err := DecodeProgram(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("program: %s: %w", path, err)
	}
	return program, nil
}

// DecodeProgram decodes a Program node from r. Numbers are kept exact so
// long literals survive the round trip.
func DecodeProgram(r io.Reader) (*ast.Program, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	program, ok := node.(*ast.Program)
	if !ok {
		return nil, fmt.Errorf("decoded node is not a program: %T", node)
	}
	return program, nil
}

func decodeNode(node map[string]any) (ast.Node, error) {
	typ, _ := node["type"].(string)
	switch ast.NodeType(typ) {
	case ast.NodeProgram:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewProgram(body), nil
	case ast.NodeBlock:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(body), nil
	case ast.NodeExpressionStatement:
		expr, err := decodeExpression(node["expression"])
		if err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr), nil
	case ast.NodeVariableDeclaration:
		return decodeVariableDeclaration(node)
	case ast.NodeIfStatement:
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, err
		}
		consequent, err := decodeStatement(node["consequent"])
		if err != nil {
			return nil, err
		}
		alternate, err := decodeOptionalStatement(node["alternate"])
		if err != nil {
			return nil, err
		}
		return ast.NewIfStatement(cond, consequent, alternate), nil
	case ast.NodeWhileStatement:
		cond, err := decodeExpression(node["condition"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewWhileStatement(cond, body), nil
	case ast.NodeForStatement:
		init, err := decodeStatements(node["init"])
		if err != nil {
			return nil, err
		}
		cond, err := decodeOptionalExpression(node["condition"])
		if err != nil {
			return nil, err
		}
		update, err := decodeExpressions(node["update"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewForStatement(init, cond, update, body), nil
	case ast.NodeForEachStatement:
		variable, err := decodeStatement(node["variable"])
		if err != nil {
			return nil, err
		}
		decl, ok := variable.(*ast.VariableDeclaration)
		if !ok {
			return nil, fmt.Errorf("invalid for-each variable %T", variable)
		}
		iterable, err := decodeExpression(node["iterable"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewForEachStatement(decl, iterable, body), nil
	case ast.NodeSwitchStatement:
		discriminant, err := decodeExpression(node["discriminant"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewSwitchStatement(discriminant, body), nil
	case ast.NodeBreakStatement:
		return ast.NewBreakStatement(), nil
	case ast.NodeReturnStatement:
		arg, err := decodeOptionalExpression(node["argument"])
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(arg), nil
	case ast.NodeFunctionDeclaration:
		return decodeFunctionDeclaration(node)
	case ast.NodeClassDeclaration:
		id, err := decodeIdentifier(node["id"])
		if err != nil {
			return nil, err
		}
		var superclass *ast.Identifier
		if node["superclass"] != nil {
			superclass, err = decodeIdentifier(node["superclass"])
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return ast.NewClassDeclaration(id, superclass, body), nil
	case ast.NodeIdentifier:
		name, _ := node["name"].(string)
		return ast.NewIdentifier(name), nil
	case ast.NodeIntegerLiteral:
		val, err := decodeInt(node["value"])
		if err != nil {
			return nil, err
		}
		var suffix *ast.IntegerType
		if s, ok := node["integerType"].(string); ok {
			it := ast.IntegerType(s)
			suffix = &it
		}
		return ast.NewIntegerLiteral(val, suffix), nil
	case ast.NodeFloatLiteral:
		val, err := decodeFloat(node["value"])
		if err != nil {
			return nil, err
		}
		var suffix *ast.FloatType
		if s, ok := node["floatType"].(string); ok {
			ft := ast.FloatType(s)
			suffix = &ft
		}
		return ast.NewFloatLiteral(val, suffix), nil
	case ast.NodeStringLiteral:
		val, _ := node["value"].(string)
		return ast.NewStringLiteral(val), nil
	case ast.NodeCharLiteral:
		val, _ := node["value"].(string)
		return ast.NewCharLiteral(val), nil
	case ast.NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return ast.NewBooleanLiteral(val), nil
	case ast.NodeNullLiteral:
		return ast.NewNullLiteral(), nil
	case ast.NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(op, left, right), nil
	case ast.NodeAssignmentExpression:
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpression(left, right), nil
	case ast.NodeUnaryExpression, ast.NodePostfixExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpression(node["operand"])
		if err != nil {
			return nil, err
		}
		if ast.NodeType(typ) == ast.NodePostfixExpression {
			return ast.NewPostfixExpression(ast.UnaryOperator(op), operand), nil
		}
		return ast.NewUnaryExpression(ast.UnaryOperator(op), operand), nil
	case ast.NodeMemberAccess:
		object, err := decodeExpression(node["object"])
		if err != nil {
			return nil, err
		}
		member, err := decodeExpression(node["member"])
		if err != nil {
			return nil, err
		}
		return ast.NewMemberAccessExpression(object, member), nil
	case ast.NodeFunctionCall:
		var callee *ast.Identifier
		if node["callee"] != nil {
			id, err := decodeIdentifier(node["callee"])
			if err != nil {
				return nil, err
			}
			callee = id
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		call := ast.NewFunctionCall(callee, args)
		call.Keyword, _ = node["keyword"].(string)
		return call, nil
	case ast.NodeThisExpression:
		return ast.NewThisExpression(), nil
	case ast.NodeSuperExpression:
		return ast.NewSuperExpression(), nil
	case ast.NodeTypeReference:
		name, _ := node["name"].(string)
		return ast.NewTypeReference(name), nil
	case ast.NodeFunctionTypeReference:
		rawParams, _ := node["paramTypes"].([]any)
		params := make([]ast.TypeExpression, 0, len(rawParams))
		for _, raw := range rawParams {
			param, err := decodeTypeExpression(raw)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		var ret ast.TypeExpression
		if node["returnType"] != nil {
			decoded, err := decodeTypeExpression(node["returnType"])
			if err != nil {
				return nil, err
			}
			ret = decoded
		}
		return ast.NewFunctionTypeReference(params, ret), nil
	case "":
		return nil, fmt.Errorf("node without a type")
	default:
		return nil, fmt.Errorf("unsupported node type %q", typ)
	}
}

func decodeVariableDeclaration(node map[string]any) (*ast.VariableDeclaration, error) {
	name, err := decodeIdentifier(node["name"])
	if err != nil {
		return nil, err
	}
	var varType ast.TypeExpression
	if node["varType"] != nil {
		varType, err = decodeTypeExpression(node["varType"])
		if err != nil {
			return nil, err
		}
	}
	init, err := decodeOptionalExpression(node["initializer"])
	if err != nil {
		return nil, err
	}
	return ast.NewVariableDeclaration(name, varType, init), nil
}

func decodeFunctionDeclaration(node map[string]any) (*ast.FunctionDeclaration, error) {
	id, err := decodeIdentifier(node["id"])
	if err != nil {
		return nil, err
	}
	rawParams, _ := node["params"].([]any)
	params := make([]*ast.Parameter, 0, len(rawParams))
	for _, raw := range rawParams {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %T", raw)
		}
		name, err := decodeIdentifier(child["name"])
		if err != nil {
			return nil, err
		}
		var paramType ast.TypeExpression
		if child["paramType"] != nil {
			paramType, err = decodeTypeExpression(child["paramType"])
			if err != nil {
				return nil, err
			}
		}
		params = append(params, ast.NewParameter(name, paramType))
	}
	var ret ast.TypeExpression
	if node["returnType"] != nil {
		ret, err = decodeTypeExpression(node["returnType"])
		if err != nil {
			return nil, err
		}
	}
	var body *ast.Block
	if node["body"] != nil {
		stmt, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		block, ok := stmt.(*ast.Block)
		if !ok {
			return nil, fmt.Errorf("function %s body is %T, not a block", id.Name, stmt)
		}
		body = block
	}
	return ast.NewFunctionDeclaration(id, params, ret, body), nil
}

func decodeChild(raw any) (ast.Node, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected node object, found %T", raw)
	}
	return decodeNode(child)
}

func decodeStatement(raw any) (ast.Statement, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%s is not a statement", node.NodeType())
	}
	return stmt, nil
}

func decodeOptionalStatement(raw any) (ast.Statement, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeStatement(raw)
}

func decodeStatements(raw any) ([]ast.Statement, error) {
	items, _ := raw.([]any)
	out := make([]ast.Statement, 0, len(items))
	for _, item := range items {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func decodeExpression(raw any) (ast.Expression, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeOptionalExpression(raw any) (ast.Expression, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeExpression(raw)
}

func decodeExpressions(raw any) ([]ast.Expression, error) {
	items, _ := raw.([]any)
	out := make([]ast.Expression, 0, len(items))
	for _, item := range items {
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeIdentifier(raw any) (*ast.Identifier, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*ast.Identifier)
	if !ok {
		return nil, fmt.Errorf("expected identifier, found %s", node.NodeType())
	}
	return id, nil
}

func decodeTypeExpression(raw any) (ast.TypeExpression, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	typ, ok := node.(ast.TypeExpression)
	if !ok {
		return nil, fmt.Errorf("%s is not a type expression", node.NodeType())
	}
	return typ, nil
}

func decodeInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %s: %w", v, err)
		}
		return n, nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %q: %w", v, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid integer literal %T", raw)
	}
}

func decodeFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid float literal %s: %w", v, err)
		}
		return f, nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("invalid float literal %T", raw)
	}
}
