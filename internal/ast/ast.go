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

// Package ast is the typed sum-of-products tree for the supported C
// subset: three mutually recursive node families (Expression, Statement,
// TopLevelItem), grounded on falcon's ast/ast.go tagged-interface idiom but
// following spec §3's grammar instead of falcon's language.
package ast

import (
	"fmt"

	"github.com/nanocc/nanocc/internal/diag"
	"github.com/nanocc/nanocc/internal/types"
)

// Node is implemented by every AST node.
type Node interface {
	Span() diag.Span
	String() string
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// -----------------------------------------------------------------------
// Expressions

type exprBase struct {
	span diag.Span
}

func (e *exprBase) Span() diag.Span { return e.span }
func (*exprBase) exprNode()         {}

// Identifier is a bare name reference.
type Identifier struct {
	exprBase
	Name string
}

func (i *Identifier) String() string { return fmt.Sprintf("Identifier(%s)", i.Name) }

// Constant is an integer literal, carrying the lexer's raw value and
// suffix flags; its semantic type is inferred by the code generator
// (spec §4.7, Constant expression).
type Constant struct {
	exprBase
	Value    uint64
	IsLong   bool
	IsSigned bool
}

func (c *Constant) String() string { return fmt.Sprintf("Constant(%d)", c.Value) }

// Assignment is `name = rhs`.
type Assignment struct {
	exprBase
	AssigneeName string
	Rhs          Expr
}

func (a *Assignment) String() string { return fmt.Sprintf("Assignment(%s)", a.AssigneeName) }

// Call is `callee(args...)`.
type Call struct {
	exprBase
	CalleeName string
	Args       []Expr
}

func (c *Call) String() string { return fmt.Sprintf("Call(%s)", c.CalleeName) }

type UnaryOpKind int

const (
	UnaryNeg UnaryOpKind = iota
)

// UnaryOp is a prefix unary operator applied to an operand. UnaryNeg is
// its only kind, and the parser never constructs a UnaryOp (the grammar
// has no unary-operator production; the data model reserves the node; see
// DESIGN.md).
type UnaryOp struct {
	exprBase
	Kind    UnaryOpKind
	Operand Expr
}

func (u *UnaryOp) String() string { return "UnaryOp" }

type BinaryOpKind int

const (
	Add BinaryOpKind = iota
	Sub
	Mul
	Div
)

func (k BinaryOpKind) String() string {
	switch k {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// BinaryOp is a left-associative binary arithmetic expression.
type BinaryOp struct {
	exprBase
	Kind BinaryOpKind
	Lhs  Expr
	Rhs  Expr
}

func (b *BinaryOp) String() string { return fmt.Sprintf("BinaryOp(%s)", b.Kind) }

// -----------------------------------------------------------------------
// Statements

type stmtBase struct {
	span diag.Span
}

func (s *stmtBase) Span() diag.Span { return s.span }
func (*stmtBase) stmtNode()         {}

// ExpressionStmt evaluates an expression and discards its value.
type ExpressionStmt struct {
	stmtBase
	Expr Expr
}

func (s *ExpressionStmt) String() string { return "ExpressionStmt" }

// VariableDeclaration declares a local with an optional initializer.
type VariableDeclaration struct {
	stmtBase
	Name        string
	Type        *types.Type
	Initializer Expr // nil if absent
}

func (s *VariableDeclaration) String() string {
	return fmt.Sprintf("VariableDeclaration(%s: %v)", s.Name, s.Type)
}

// Return returns from the enclosing function, with an optional value.
type Return struct {
	stmtBase
	Expr Expr // nil for a bare `return;`
}

func (s *Return) String() string { return "Return" }

// -----------------------------------------------------------------------
// Top-level items

// Parameter is one entry of a function signature's parameter list. Name is
// empty for an abstract (unnamed) parameter.
type Parameter struct {
	Name string
	Type *types.Type
}

// Signature is a function's typed interface.
type Signature struct {
	Name       string
	ReturnType *types.Type
	Parameters []Parameter
}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Stmt
	span  diag.Span
}

func (b *Block) Span() diag.Span { return b.span }
func (b *Block) String() string  { return "Block" }

// TopLevelItem is implemented by every item that may appear at file scope.
type TopLevelItem interface {
	Node
	topLevelItemNode()
}

// FunctionDefinition is a function signature paired with its body.
type FunctionDefinition struct {
	Signature Signature
	Body      *Block
	span      diag.Span
}

func (f *FunctionDefinition) Span() diag.Span { return f.span }
func (f *FunctionDefinition) String() string {
	return fmt.Sprintf("FunctionDefinition(%s)", f.Signature.Name)
}
func (*FunctionDefinition) topLevelItemNode() {}

// Root is the whole translation unit: an ordered sequence of top-level
// items, terminated implicitly by EOF during parsing.
type Root struct {
	Items []TopLevelItem
	span  diag.Span
}

func (r *Root) Span() diag.Span { return r.span }
func (r *Root) String() string  { return "Root" }
