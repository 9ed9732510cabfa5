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
package ast

import (
	"github.com/nanocc/nanocc/internal/arena"
	"github.com/nanocc/nanocc/internal/diag"
	"github.com/nanocc/nanocc/internal/types"
)

// Builder allocates every node the parser produces from a dedicated arena
// per concrete type, so a whole translation unit's AST lives in a handful
// of contiguous blocks instead of one allocation per node. Span fields are
// unexported, so construction is confined to this package -- the parser
// only ever sees the returned pointers.
type Builder struct {
	identifiers *arena.Pool[Identifier]
	constants   *arena.Pool[Constant]
	assignments *arena.Pool[Assignment]
	calls       *arena.Pool[Call]
	unaryOps    *arena.Pool[UnaryOp]
	binaryOps   *arena.Pool[BinaryOp]

	exprStmts *arena.Pool[ExpressionStmt]
	varDecls  *arena.Pool[VariableDeclaration]
	returns   *arena.Pool[Return]
	blocks    *arena.Pool[Block]

	funcDefs *arena.Pool[FunctionDefinition]
	roots    *arena.Pool[Root]
}

// NewBuilder creates a Builder with default-capacity arenas.
func NewBuilder() *Builder {
	return &Builder{
		identifiers: arena.NewPool[Identifier](0),
		constants:   arena.NewPool[Constant](0),
		assignments: arena.NewPool[Assignment](0),
		calls:       arena.NewPool[Call](0),
		unaryOps:    arena.NewPool[UnaryOp](0),
		binaryOps:   arena.NewPool[BinaryOp](0),
		exprStmts:   arena.NewPool[ExpressionStmt](0),
		varDecls:    arena.NewPool[VariableDeclaration](0),
		returns:     arena.NewPool[Return](0),
		blocks:      arena.NewPool[Block](0),
		funcDefs:    arena.NewPool[FunctionDefinition](0),
		roots:       arena.NewPool[Root](0),
	}
}

// Release frees every arena the builder owns. Per invariant 6, no node it
// handed out may be dereferenced afterward.
func (b *Builder) Release() {
	b.identifiers.Release()
	b.constants.Release()
	b.assignments.Release()
	b.calls.Release()
	b.unaryOps.Release()
	b.binaryOps.Release()
	b.exprStmts.Release()
	b.varDecls.Release()
	b.returns.Release()
	b.blocks.Release()
	b.funcDefs.Release()
	b.roots.Release()
}

func (b *Builder) NewIdentifier(span diag.Span, name string) *Identifier {
	return b.identifiers.Alloc(Identifier{exprBase: exprBase{span: span}, Name: name})
}

func (b *Builder) NewConstant(span diag.Span, value uint64, isLong, isSigned bool) *Constant {
	return b.constants.Alloc(Constant{exprBase: exprBase{span: span}, Value: value, IsLong: isLong, IsSigned: isSigned})
}

func (b *Builder) NewAssignment(span diag.Span, assigneeName string, rhs Expr) *Assignment {
	return b.assignments.Alloc(Assignment{exprBase: exprBase{span: span}, AssigneeName: assigneeName, Rhs: rhs})
}

func (b *Builder) NewCall(span diag.Span, calleeName string, args []Expr) *Call {
	return b.calls.Alloc(Call{exprBase: exprBase{span: span}, CalleeName: calleeName, Args: args})
}

func (b *Builder) NewUnaryOp(span diag.Span, kind UnaryOpKind, operand Expr) *UnaryOp {
	return b.unaryOps.Alloc(UnaryOp{exprBase: exprBase{span: span}, Kind: kind, Operand: operand})
}

func (b *Builder) NewBinaryOp(span diag.Span, kind BinaryOpKind, lhs, rhs Expr) *BinaryOp {
	return b.binaryOps.Alloc(BinaryOp{exprBase: exprBase{span: span}, Kind: kind, Lhs: lhs, Rhs: rhs})
}

func (b *Builder) NewExpressionStmt(span diag.Span, expr Expr) *ExpressionStmt {
	return b.exprStmts.Alloc(ExpressionStmt{stmtBase: stmtBase{span: span}, Expr: expr})
}

func (b *Builder) NewVariableDeclaration(span diag.Span, name string, typ *types.Type, init Expr) *VariableDeclaration {
	return b.varDecls.Alloc(VariableDeclaration{stmtBase: stmtBase{span: span}, Name: name, Type: typ, Initializer: init})
}

func (b *Builder) NewReturn(span diag.Span, expr Expr) *Return {
	return b.returns.Alloc(Return{stmtBase: stmtBase{span: span}, Expr: expr})
}

func (b *Builder) NewBlock(span diag.Span, stmts []Stmt) *Block {
	return b.blocks.Alloc(Block{span: span, Stmts: stmts})
}

func (b *Builder) NewFunctionDefinition(span diag.Span, sig Signature, body *Block) *FunctionDefinition {
	return b.funcDefs.Alloc(FunctionDefinition{span: span, Signature: sig, Body: body})
}

func (b *Builder) NewRoot(span diag.Span, items []TopLevelItem) *Root {
	return b.roots.Alloc(Root{span: span, Items: items})
}
