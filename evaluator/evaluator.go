// Package evaluator walks the AST produced by the parser and produces an
// object.Object, propagating runtime errors and return values by
// short-circuit rather than by panicking.
package evaluator

import (
	"github.com/midbel/monkey/ast"
	"github.com/midbel/monkey/env"
	"github.com/midbel/monkey/object"
)

// NewEnvironment returns a fresh root scope, ready to pass to Eval.
func NewEnvironment() env.Environment[object.Object] {
	return env.NewEnvironment[object.Object]()
}

// Eval evaluates a full program: statements run in order until one
// produces a Return or Error. A Return is unwrapped exactly once here; an
// Error or the value of the last expression statement is returned as-is.
// An empty program evaluates to object.Null.
func Eval(program *ast.Program, scope env.Environment[object.Object]) object.Object {
	var result object.Object = object.Null
	for _, stmt := range program.Statements {
		result = evalStatement(stmt, scope)
		switch v := result.(type) {
		case *object.Error:
			return v
		case *object.ReturnValue:
			return v.Value
		}
	}
	return result
}

// evalBlock evaluates a block's statements without unwrapping a Return:
// it propagates the wrapper unchanged so nested blocks unwind all the way
// to the nearest enclosing function call.
func evalBlock(block ast.Block, scope env.Environment[object.Object]) object.Object {
	var result object.Object = object.Null
	for _, stmt := range block.Statements {
		result = evalStatement(stmt, scope)
		switch result.(type) {
		case *object.Error, *object.ReturnValue:
			return result
		}
	}
	return result
}

func evalStatement(stmt ast.Statement, scope env.Environment[object.Object]) object.Object {
	switch s := stmt.(type) {
	case *ast.Let:
		value := evalExpression(s.Value, scope)
		if object.IsError(value) {
			return value
		}
		scope.Set(s.Name, value)
		return object.Null
	case *ast.Return:
		value := evalExpression(s.Value, scope)
		if object.IsError(value) {
			return value
		}
		return &object.ReturnValue{Value: value}
	case *ast.ExpressionStatement:
		return evalExpression(s.Expression, scope)
	default:
		return object.Newf(object.InvalidToken, "unsupported statement type %T", stmt)
	}
}

func evalExpression(expr ast.Expression, scope env.Environment[object.Object]) object.Object {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &object.Integer{Value: e.Value}
	case *ast.BooleanLiteral:
		return object.NativeBool(e.Value)
	case *ast.StringLiteral:
		return &object.String{Value: e.Value}
	case *ast.Identifier:
		return evalIdentifier(e, scope)
	case *ast.Prefix:
		return evalPrefix(e, scope)
	case *ast.Infix:
		return evalInfix(e, scope)
	case *ast.IfElse:
		return evalIf(e, scope)
	case *ast.FunctionLiteral:
		return &object.Function{Parameters: e.Parameters, Body: e.Body, Env: scope}
	case *ast.Call:
		return evalCall(e, scope)
	case *ast.ArrayLiteral:
		return evalArrayLiteral(e, scope)
	case *ast.Index:
		return evalIndex(e, scope)
	default:
		return object.Newf(object.InvalidToken, "unsupported expression type %T", expr)
	}
}

func evalIdentifier(ident *ast.Identifier, scope env.Environment[object.Object]) object.Object {
	if value, ok := scope.Get(ident.Name); ok {
		return value
	}
	if builtin, ok := builtins[ident.Name]; ok {
		return builtin
	}
	return object.Newf(object.InvalidIdentifier, "identifier not found: %s", ident.Name)
}

func evalPrefix(expr *ast.Prefix, scope env.Environment[object.Object]) object.Object {
	right := evalExpression(expr.Right, scope)
	if object.IsError(right) {
		return right
	}
	switch expr.Op.String() {
	case "!":
		return object.NativeBool(!object.Truthy(right))
	case "-":
		i, ok := right.(*object.Integer)
		if !ok {
			return object.Newf(object.InvalidToken, "unknown operator: -%s", right.Type())
		}
		return &object.Integer{Value: -i.Value}
	default:
		return object.Newf(object.UnknownOperator, "unknown operator: %s", expr.Op)
	}
}

func evalInfix(expr *ast.Infix, scope env.Environment[object.Object]) object.Object {
	left := evalExpression(expr.Left, scope)
	if object.IsError(left) {
		return left
	}
	right := evalExpression(expr.Right, scope)
	if object.IsError(right) {
		return right
	}

	if left.Type() != right.Type() {
		return object.Newf(object.InvalidToken, "type mismatch: %s %s %s", left.Type(), expr.Op, right.Type())
	}

	result, err := object.ApplyInfix(expr.Op.String(), left, right)
	if err != nil {
		if e, ok := err.(*object.Error); ok {
			return e
		}
		return object.Newf(object.UnknownOperator, "%s", err)
	}
	return result
}

func evalIf(expr *ast.IfElse, scope env.Environment[object.Object]) object.Object {
	cond := evalExpression(expr.Cond, scope)
	if object.IsError(cond) {
		return cond
	}
	if object.Truthy(cond) {
		return evalBlock(expr.Consequence, env.NewEnclosedEnvironment(scope))
	}
	if expr.Alternative != nil {
		return evalBlock(*expr.Alternative, env.NewEnclosedEnvironment(scope))
	}
	return object.Null
}

func evalArrayLiteral(expr *ast.ArrayLiteral, scope env.Environment[object.Object]) object.Object {
	elements, err := evalExpressions(expr.Elements, scope)
	if err != nil {
		return err
	}
	return &object.Array{Elements: elements}
}

func evalExpressions(exprs []ast.Expression, scope env.Environment[object.Object]) ([]object.Object, object.Object) {
	var result []object.Object
	for _, e := range exprs {
		v := evalExpression(e, scope)
		if object.IsError(v) {
			return nil, v
		}
		result = append(result, v)
	}
	return result, nil
}

func evalIndex(expr *ast.Index, scope env.Environment[object.Object]) object.Object {
	collection := evalExpression(expr.Collection, scope)
	if object.IsError(collection) {
		return collection
	}
	index := evalExpression(expr.Index, scope)
	if object.IsError(index) {
		return index
	}

	arr, ok := collection.(*object.Array)
	if !ok {
		return object.Newf(object.InvalidToken, "index operator not supported: %s", collection.Type())
	}
	idx, ok := index.(*object.Integer)
	if !ok {
		return object.Newf(object.InvalidToken, "index must be an integer, got %s", index.Type())
	}
	if idx.Value < 0 || idx.Value >= int64(len(arr.Elements)) {
		return object.Null
	}
	return arr.Elements[idx.Value]
}

func evalCall(expr *ast.Call, scope env.Environment[object.Object]) object.Object {
	callee := evalExpression(expr.Callee, scope)
	if object.IsError(callee) {
		return callee
	}

	args, err := evalExpressions(expr.Arguments, scope)
	if err != nil {
		return err
	}

	switch fn := callee.(type) {
	case *object.Builtin:
		return fn.Fn(args...)
	case *object.Function:
		return applyFunction(fn, args)
	default:
		return object.Newf(object.InvalidToken, "not a function: %s", callee.Type())
	}
}

func applyFunction(fn *object.Function, args []object.Object) object.Object {
	if len(args) != len(fn.Parameters) {
		return object.Newf(object.WrongArity, "wrong number of arguments: want=%d, got=%d", len(fn.Parameters), len(args))
	}
	scope := env.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		scope.Set(param.Name, args[i])
	}
	result := evalBlock(fn.Body, scope)
	if ret, ok := result.(*object.ReturnValue); ok {
		return ret.Value
	}
	return result
}
