// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package parser builds an AST from a token sequence by recursive descent,
// grounded on falcon's ast/parser.go entry-point shape but following
// original_source's parser.c backtracking discipline: every production
// pushes a position, and on failure the position is reverted rather than
// left consumed, so a failed alternative never leaks partial progress into
// the next one tried. Alternatives that all fail have their errors folded
// together with Join rather than discarding all but the last, matching
// original_source's join_parse_errors.
package parser

import (
	"github.com/nanocc/nanocc/internal/ast"
	"github.com/nanocc/nanocc/internal/diag"
	"github.com/nanocc/nanocc/internal/token"
	"github.com/nanocc/nanocc/internal/types"
)

// tokenSource produces tokens one at a time; satisfied by *lexer.Lexer.
type tokenSource interface {
	NextToken() token.Token
}

// Parser turns a token stream into a Root. Tokens are drained eagerly up
// front into a slice so that backtracking is a cheap index assignment
// rather than re-lexing.
type Parser struct {
	tokens   []token.Token
	pos      int
	posStack []int
	b        *ast.Builder
}

// New drains src completely and returns a Parser ready to parse it.
func New(src tokenSource) *Parser {
	var tokens []token.Token
	for {
		tk := src.NextToken()
		tokens = append(tokens, tk)
		if tk.Kind == token.EOF {
			break
		}
	}
	return &Parser{tokens: tokens, b: ast.NewBuilder()}
}

func (p *Parser) peek() token.Token { return p.tokens[p.pos] }
func (p *Parser) atEOF() bool       { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	tk := p.tokens[p.pos]
	if tk.Kind != token.EOF {
		p.pos++
	}
	return tk
}

// prev returns the most recently consumed token, used as a production's
// span end once it has matched everything it needs.
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// push records the current position so a later fail can revert to it.
func (p *Parser) push() {
	p.posStack = append(p.posStack, p.pos)
}

// success pops the recorded start position and returns the span from that
// start to the last consumed token.
func (p *Parser) success() diag.Span {
	start := p.posStack[len(p.posStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]
	return diag.Span{Start: p.tokens[start].Span.Start, End: p.prev().Span.End}
}

// fail reverts to the position recorded by the matching push and passes
// the error through.
func (p *Parser) fail(err *Error) *Error {
	start := p.posStack[len(p.posStack)-1]
	p.posStack = p.posStack[:len(p.posStack)-1]
	p.pos = start
	return err
}

// expect consumes the current token if it matches kind, else leaves the
// position untouched and returns an ExpectedToken error.
func (p *Parser) expect(kind token.Kind) (token.Token, *Error) {
	tk := p.peek()
	if tk.Kind != kind {
		return token.Token{}, expectedToken(tk.Span.Start, kind, tk.Kind)
	}
	return p.advance(), nil
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

// Parse runs the whole grammar: root = top_level_item* EOF.
func (p *Parser) Parse() (*ast.Root, *Error) {
	p.push()
	var items []ast.TopLevelItem
	for !p.atEOF() {
		item, err := p.parseTopLevelItem()
		if err != nil {
			return nil, p.fail(err)
		}
		items = append(items, item)
	}
	span := p.success()
	return p.b.NewRoot(span, items), nil
}

func (p *Parser) parseTopLevelItem() (ast.TopLevelItem, *Error) {
	return p.parseFunctionDefinition()
}

// function_definition = type identifier '(' parameter_list? ')' block
func (p *Parser) parseFunctionDefinition() (*ast.FunctionDefinition, *Error) {
	p.push()

	returnType, err := p.parseType()
	if err != nil {
		return nil, p.fail(err)
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, p.fail(err)
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, p.fail(err)
	}

	var params []ast.Parameter
	if !p.at(token.RPAREN) {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, p.fail(err)
			}
			params = append(params, param)
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, p.fail(err)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, p.fail(err)
	}

	span := p.success()
	sig := ast.Signature{Name: nameTok.Text, ReturnType: returnType, Parameters: params}
	return p.b.NewFunctionDefinition(span, sig, body), nil
}

// parameter = type identifier?
func (p *Parser) parseParameter() (ast.Parameter, *Error) {
	p.push()
	typ, err := p.parseType()
	if err != nil {
		p.fail(err)
		return ast.Parameter{}, err
	}
	name := ""
	if p.at(token.IDENT) {
		name = p.advance().Text
	}
	p.success()
	return ast.Parameter{Name: name, Type: typ}, nil
}

// block = '{' statement* '}'
func (p *Parser) parseBlock() (*ast.Block, *Error) {
	p.push()
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, p.fail(err)
	}
	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, p.fail(err)
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewBlock(span, stmts), nil
}

// statement = return | variable_declaration | expression ';'
func (p *Parser) parseStatement() (ast.Stmt, *Error) {
	if p.at(token.KW_RETURN) {
		return p.parseReturn()
	}
	if p.peek().Kind.IsTypeKeyword() {
		return p.parseVariableDeclaration()
	}
	return p.parseExpressionStatement()
}

// return = 'return' expression? ';'
func (p *Parser) parseReturn() (*ast.Return, *Error) {
	p.push()
	if _, err := p.expect(token.KW_RETURN); err != nil {
		return nil, p.fail(err)
	}
	var value ast.Expr
	if !p.at(token.SEMICOLON) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, p.fail(err)
		}
		value = expr
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewReturn(span, value), nil
}

// variable_declaration = type identifier ('=' expression)? ';'
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, *Error) {
	p.push()
	typ, err := p.parseType()
	if err != nil {
		return nil, p.fail(err)
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, p.fail(err)
	}
	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, p.fail(err)
		}
		init = expr
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewVariableDeclaration(span, nameTok.Text, typ, init), nil
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStmt, *Error) {
	p.push()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, p.fail(err)
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewExpressionStmt(span, expr), nil
}

// expression = assignment | additive. assignment is tried first since
// both start with an identifier; its own push/fail already restores pos
// on mismatch, so falling through to additive starts clean.
func (p *Parser) parseExpression() (ast.Expr, *Error) {
	start := p.pos
	assign, assignErr := p.parseAssignment()
	if assignErr == nil {
		return assign, nil
	}
	p.pos = start
	additive, additiveErr := p.parseAdditive()
	if additiveErr != nil {
		return nil, joinAll(assignErr, additiveErr)
	}
	return additive, nil
}

// assignment = identifier '=' expression
func (p *Parser) parseAssignment() (*ast.Assignment, *Error) {
	p.push()
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, p.fail(err)
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, p.fail(err)
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewAssignment(span, nameTok.Text, rhs), nil
}

// additive = multiplicative (('+' | '-') multiplicative)*, iterative and
// left-associative: each further operand attaches as the new left side's
// RHS rather than recursing, matching falcon's loop-shaped binary-operator
// parsing generalized down to spec §4.2's two precedence levels.
func (p *Parser) parseAdditive() (ast.Expr, *Error) {
	p.push()
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, p.fail(err)
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, p.fail(err)
		}
		kind := ast.Add
		if op.Kind == token.MINUS {
			kind = ast.Sub
		}
		span := diag.Span{Start: left.Span().Start, End: right.Span().End}
		left = p.b.NewBinaryOp(span, kind, left, right)
	}
	p.success()
	return left, nil
}

// multiplicative = primary (('*' | '/') primary)*
func (p *Parser) parseMultiplicative() (ast.Expr, *Error) {
	p.push()
	left, err := p.parsePrimary()
	if err != nil {
		return nil, p.fail(err)
	}
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, p.fail(err)
		}
		kind := ast.Mul
		if op.Kind == token.SLASH {
			kind = ast.Div
		}
		span := diag.Span{Start: left.Span().Start, End: right.Span().End}
		left = p.b.NewBinaryOp(span, kind, left, right)
	}
	p.success()
	return left, nil
}

// primary = call | identifier | constant | '(' expression ')', tried in
// that order: call is attempted before identifier because it begins with
// one, and all four failures are joined when none match.
func (p *Parser) parsePrimary() (ast.Expr, *Error) {
	if call, err := p.tryParseCall(); err == nil {
		return call, nil
	} else if ident, err2 := p.tryParseIdentifier(); err2 == nil {
		return ident, nil
	} else if cst, err3 := p.tryParseConstant(); err3 == nil {
		return cst, nil
	} else if paren, err4 := p.tryParseParenExpression(); err4 == nil {
		return paren, nil
	} else {
		return nil, joinAll(err, err2, err3, err4)
	}
}

func (p *Parser) tryParseCall() (*ast.Call, *Error) {
	p.push()
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, p.fail(err)
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, p.fail(err)
	}
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, p.fail(err)
			}
			args = append(args, arg)
			if !p.at(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewCall(span, nameTok.Text, args), nil
}

func (p *Parser) tryParseIdentifier() (*ast.Identifier, *Error) {
	p.push()
	tk, err := p.expect(token.IDENT)
	if err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewIdentifier(span, tk.Text), nil
}

func (p *Parser) tryParseConstant() (*ast.Constant, *Error) {
	p.push()
	tk, err := p.expect(token.INT_LITERAL)
	if err != nil {
		return nil, p.fail(err)
	}
	span := p.success()
	return p.b.NewConstant(span, tk.IntValue, tk.IsLong, tk.IsSigned), nil
}

func (p *Parser) tryParseParenExpression() (ast.Expr, *Error) {
	p.push()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, p.fail(err)
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, p.fail(err)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, p.fail(err)
	}
	p.success()
	return expr, nil
}

// parseType recognizes a run of integer-type keywords and resolves them to
// a concrete *types.Type, applying the three contradiction checks and the
// char-default-signedness rule confirmed against original_source's
// parse_integer_type: a bare `char` (no explicit signed/unsigned) is
// unsigned, every other bare integer keyword combination is signed unless
// `unsigned` appears.
func (p *Parser) parseType() (*types.Type, *Error) {
	p.push()
	if p.at(token.KW_VOID) {
		p.advance()
		p.success()
		return types.VoidType, nil
	}

	start := p.peek().Span.Start
	var sawChar, sawShort, sawLong, sawInt, sawSigned, sawUnsigned bool
	count := 0
	for p.peek().Kind.IsTypeKeyword() {
		switch p.advance().Kind {
		case token.KW_CHAR:
			sawChar = true
		case token.KW_SHORT:
			sawShort = true
		case token.KW_LONG:
			sawLong = true
		case token.KW_INT:
			sawInt = true
		case token.KW_SIGNED:
			sawSigned = true
		case token.KW_UNSIGNED:
			sawUnsigned = true
		}
		count++
	}
	if count == 0 {
		tk := p.peek()
		return nil, p.fail(expectedToken(tk.Span.Start, token.KW_INT, tk.Kind))
	}

	if sawChar && (sawShort || sawLong || sawInt) {
		return nil, p.fail(invalidIntegerType(start))
	}
	if sawShort && sawLong {
		return nil, p.fail(invalidIntegerType(start))
	}
	if sawSigned && sawUnsigned {
		return nil, p.fail(invalidIntegerType(start))
	}

	var size int
	switch {
	case sawChar:
		size = 8
	case sawShort:
		size = 16
	case sawLong:
		size = 64
	default:
		size = 32
	}

	var signed bool
	if sawChar {
		signed = sawSigned
	} else {
		signed = !sawUnsigned
	}

	p.success()
	return types.NewInteger(size, signed), nil
}
