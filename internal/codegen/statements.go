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
package codegen

import (
	"github.com/nanocc/nanocc/internal/asm"
	"github.com/nanocc/nanocc/internal/ast"
	"github.com/nanocc/nanocc/internal/diag"
	"github.com/nanocc/nanocc/internal/invariant"
	"github.com/nanocc/nanocc/internal/types"
)

// lastStatementIsReturn reports whether block's final statement is a
// Return, in which case compileStatement has already emitted the
// epilogue and compileFunctionDefinition must not add a second one.
func lastStatementIsReturn(block *ast.Block) bool {
	if len(block.Stmts) == 0 {
		return false
	}
	_, ok := block.Stmts[len(block.Stmts)-1].(*ast.Return)
	return ok
}

func (c *Compiler) compileBlock(block *ast.Block) error {
	for _, stmt := range block.Stmts {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// compileStatement dispatches on the statement's concrete type.
// stack_offset_temporary resets to stack_offset at every statement
// boundary so a later statement's temporaries never alias an earlier
// one's, per spec §4.7's temporary spill policy.
func (c *Compiler) compileStatement(stmt ast.Stmt) error {
	c.stackOffsetTemporary = c.stackOffset

	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, _, err := c.compileExpression(s.Expr)
		return err
	case *ast.VariableDeclaration:
		return c.compileVariableDeclaration(s)
	case *ast.Return:
		return c.compileReturn(s)
	default:
		invariant.Unreachable("unknown statement type %T", stmt)
		return nil
	}
}

func (c *Compiler) compileVariableDeclaration(s *ast.VariableDeclaration) error {
	slot, err := c.declareLocal(s.Name, s.Type, s.Span().Start)
	if err != nil {
		return err
	}
	if s.Initializer == nil {
		return nil
	}
	value, valueType, err := c.compileExpression(s.Initializer)
	if err != nil {
		return err
	}
	if !types.CanCoerce(s.Type, valueType) {
		return &diag.CompileError{
			Kind: diag.IncompatibleTypes, Span: s.Span(),
			First: s.Type, Second: valueType, Colorize: c.colorize,
		}
	}
	c.body.EmitAssignment(slot, value, s.Type, valueType, scratch(widthOf(s.Type)))
	return nil
}

func (c *Compiler) compileReturn(s *ast.Return) error {
	if s.Expr != nil {
		value, valueType, err := c.compileExpression(s.Expr)
		if err != nil {
			return err
		}
		if !types.CanCoerce(c.retType, valueType) {
			return &diag.CompileError{
				Kind: diag.IncompatibleTypes, Span: s.Span(),
				First: c.retType, Second: valueType, Colorize: c.colorize,
			}
		}
		c.body.EmitAssignment(asm.Reg(asm.RAX, widthOf(c.retType)), value, c.retType, valueType, scratch(widthOf(c.retType)))
	}
	c.body.EmitFunctionEpilogue()
	return nil
}
