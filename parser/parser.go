// Package parser implements the Pratt expression parser and the
// statement-level recursive descent built on top of it.
package parser

import (
	"fmt"
	"strconv"

	"github.com/midbel/monkey/ast"
	"github.com/midbel/monkey/lexer"
	"github.com/midbel/monkey/token"
)

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser converts a token stream into a Program. Parsing is total: on
// malformed input it records an error, recovers to the next statement
// boundary, and keeps going. It never panics on bad input.
type Parser struct {
	lex *lexer.Lexer

	curr token.Token
	peek token.Token

	errors []error

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New builds a Parser reading tokens from lex and registers every
// prefix/infix parse function the grammar needs.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{
		lex:       lex,
		prefixFns: make(map[token.Kind]prefixParseFn),
		infixFns:  make(map[token.Kind]infixParseFn),
	}

	p.registerPrefix(token.Identifier, p.parseIdentifier)
	p.registerPrefix(token.Int, p.parseIntegerLiteral)
	p.registerPrefix(token.String, p.parseStringLiteral)
	p.registerPrefix(token.True, p.parseBooleanLiteral)
	p.registerPrefix(token.False, p.parseBooleanLiteral)
	p.registerPrefix(token.Bang, p.parsePrefixExpression)
	p.registerPrefix(token.Minus, p.parsePrefixExpression)
	p.registerPrefix(token.LeftParen, p.parseGroupedExpression)
	p.registerPrefix(token.If, p.parseIfExpression)
	p.registerPrefix(token.Function, p.parseFunctionLiteral)
	p.registerPrefix(token.LeftBracket, p.parseArrayLiteral)

	p.registerInfix(token.Plus, p.parseInfixExpression)
	p.registerInfix(token.Minus, p.parseInfixExpression)
	p.registerInfix(token.Slash, p.parseInfixExpression)
	p.registerInfix(token.Asterisk, p.parseInfixExpression)
	p.registerInfix(token.Equal, p.parseInfixExpression)
	p.registerInfix(token.NotEqual, p.parseInfixExpression)
	p.registerInfix(token.LessThan, p.parseInfixExpression)
	p.registerInfix(token.GreaterThan, p.parseInfixExpression)
	p.registerInfix(token.LeftParen, p.parseCallExpression)
	p.registerInfix(token.LeftBracket, p.parseIndexExpression)

	p.next()
	p.next()
	return p
}

// Parse consumes the entire token stream and returns a Program. It never
// returns a nil statements slice on empty input and never aborts: malformed
// statements are recorded in Program.Errors and parsing continues past
// them.
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}
	for !p.done() {
		before := len(p.errors)
		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
		}
		if len(p.errors) > before {
			p.synchronize()
			continue
		}
		program.Statements = append(program.Statements, stmt)
		p.next()
	}
	program.Errors = p.errors
	return program
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curr.Kind {
	case token.Let:
		return p.parseLetStatement()
	case token.Return:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	stmt := &ast.Let{Token: p.curr}
	if !p.expectPeek(token.Identifier) {
		return nil, p.unexpectedPeek(token.Identifier)
	}
	stmt.Name = p.curr.Literal
	if !p.expectPeek(token.Assign) {
		return nil, p.unexpectedPeek(token.Assign)
	}
	p.next()
	value, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	p.skipSemicolon()
	return stmt, nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	stmt := &ast.Return{Token: p.curr}
	p.next()
	value, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	p.skipSemicolon()
	return stmt, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	stmt := &ast.ExpressionStatement{Token: p.curr}
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	stmt.Expression = expr
	p.skipSemicolon()
	return stmt, nil
}

func (p *Parser) parseExpression(minPrecedence int) (ast.Expression, error) {
	prefix, ok := p.prefixFns[p.curr.Kind]
	if !ok {
		return nil, fmt.Errorf("no prefix parse function for %s", p.curr.Kind)
	}
	left := prefix()
	if left == nil {
		left = ast.Null
	}

	for !p.peekIsTerminator() && minPrecedence < precedenceOf(p.peek.Kind) {
		infix, ok := p.infixFns[p.peek.Kind]
		if !ok {
			return left, nil
		}
		p.next()
		left = infix(left)
	}
	return left, nil
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curr, Name: p.curr.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curr}
	v, err := strconv.ParseInt(p.curr.Literal, 0, 64)
	if err != nil {
		p.errors = append(p.errors, fmt.Errorf("could not parse %q as integer", p.curr.Literal))
		return ast.Null
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curr, Value: p.curr.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curr, Value: p.curr.Kind == token.True}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.Prefix{Token: p.curr, Op: p.curr.Kind}
	p.next()
	right, err := p.parseExpression(Prefix)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	expr.Right = right
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.Infix{Token: p.curr, Op: p.curr.Kind, Left: left}
	precedence := precedenceOf(p.curr.Kind)
	p.next()
	right, err := p.parseExpression(precedence)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	expr.Right = right
	return expr
}

// parseGroupedExpression requires exactly one matching ")". Unlike the
// original implementation this was distilled from, it does not silently
// consume extra trailing ")" tokens.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.next()
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	if !p.expectPeek(token.RightParen) {
		p.errors = append(p.errors, p.unexpectedPeek(token.RightParen))
		return ast.Null
	}
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfElse{Token: p.curr}
	if !p.expectPeek(token.LeftParen) {
		p.errors = append(p.errors, p.unexpectedPeek(token.LeftParen))
		return ast.Null
	}
	p.next()
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	expr.Cond = cond
	if !p.expectPeek(token.RightParen) {
		p.errors = append(p.errors, p.unexpectedPeek(token.RightParen))
		return ast.Null
	}
	if !p.expectPeek(token.LeftBrace) {
		p.errors = append(p.errors, p.unexpectedPeek(token.LeftBrace))
		return ast.Null
	}
	block, err := p.parseBlockStatement()
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	expr.Consequence = block

	if p.peek.Kind == token.Else {
		p.next()
		if !p.expectPeek(token.LeftBrace) {
			p.errors = append(p.errors, p.unexpectedPeek(token.LeftBrace))
			return ast.Null
		}
		alt, err := p.parseBlockStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			return ast.Null
		}
		expr.Alternative = &alt
	}
	return expr
}

func (p *Parser) parseBlockStatement() (ast.Block, error) {
	var block ast.Block
	p.next()
	for p.curr.Kind != token.RightBrace && !p.done() {
		stmt, err := p.parseStatement()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		block.Statements = append(block.Statements, stmt)
		p.next()
	}
	if p.curr.Kind != token.RightBrace {
		return block, p.unexpectedCurrent(token.RightBrace)
	}
	return block, nil
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curr}
	if !p.expectPeek(token.LeftParen) {
		p.errors = append(p.errors, p.unexpectedPeek(token.LeftParen))
		return ast.Null
	}
	params, err := p.parseFunctionParameters()
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	fn.Parameters = params
	if !p.expectPeek(token.LeftBrace) {
		p.errors = append(p.errors, p.unexpectedPeek(token.LeftBrace))
		return ast.Null
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	fn.Body = body
	return fn
}

func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, error) {
	var params []*ast.Identifier
	if p.peek.Kind == token.RightParen {
		p.next()
		return params, nil
	}
	p.next()
	params = append(params, &ast.Identifier{Token: p.curr, Name: p.curr.Literal})
	for p.peek.Kind == token.Comma {
		p.next()
		p.next()
		params = append(params, &ast.Identifier{Token: p.curr, Name: p.curr.Literal})
	}
	if !p.expectPeek(token.RightParen) {
		return nil, p.unexpectedPeek(token.RightParen)
	}
	return params, nil
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.Call{Token: p.curr, Callee: callee}
	args, err := p.parseExpressionList(token.RightParen)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	call.Arguments = args
	return call
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curr}
	elems, err := p.parseExpressionList(token.RightBracket)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	arr.Elements = elems
	return arr
}

func (p *Parser) parseExpressionList(end token.Kind) ([]ast.Expression, error) {
	var list []ast.Expression
	if p.peek.Kind == end {
		p.next()
		return list, nil
	}
	p.next()
	first, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	list = append(list, first)
	for p.peek.Kind == token.Comma {
		p.next()
		p.next()
		e, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	if !p.expectPeek(end) {
		return nil, p.unexpectedPeek(end)
	}
	return list, nil
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	idx := &ast.Index{Token: p.curr, Collection: left}
	p.next()
	index, err := p.parseExpression(Lowest)
	if err != nil {
		p.errors = append(p.errors, err)
		return ast.Null
	}
	idx.Index = index
	if !p.expectPeek(token.RightBracket) {
		p.errors = append(p.errors, p.unexpectedPeek(token.RightBracket))
		return ast.Null
	}
	return idx
}

// --- plumbing ---

func (p *Parser) registerPrefix(kind token.Kind, fn prefixParseFn) {
	p.prefixFns[kind] = fn
}

func (p *Parser) registerInfix(kind token.Kind, fn infixParseFn) {
	p.infixFns[kind] = fn
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) done() bool {
	return p.curr.Kind == token.EOF
}

func (p *Parser) peekIsTerminator() bool {
	return p.peek.Kind == token.Semicolon || p.peek.Kind == token.EOF
}

func (p *Parser) expectPeek(kind token.Kind) bool {
	if p.peek.Kind != kind {
		return false
	}
	p.next()
	return true
}

func (p *Parser) skipSemicolon() {
	if p.peek.Kind == token.Semicolon {
		p.next()
	}
}

func (p *Parser) unexpectedPeek(want token.Kind) error {
	return fmt.Errorf("expected next token to be %s, got %s instead", want, p.peek.Kind)
}

func (p *Parser) unexpectedCurrent(want token.Kind) error {
	return fmt.Errorf("expected token to be %s, got %s instead", want, p.curr.Kind)
}

// synchronize recovers from a parse error by advancing to the next
// statement boundary: a semicolon or EOF.
func (p *Parser) synchronize() {
	for p.curr.Kind != token.Semicolon && !p.done() {
		p.next()
	}
	if p.curr.Kind == token.Semicolon {
		p.next()
	}
}
