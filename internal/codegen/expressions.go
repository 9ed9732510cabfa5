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

// compileExpression dispatches on the expression's concrete type,
// returning the operand its value lives in and its semantic type.
func (c *Compiler) compileExpression(expr ast.Expr) (asm.Operand, *types.Type, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return c.compileIdentifier(e)
	case *ast.Constant:
		return c.compileConstant(e), constantType(e), nil
	case *ast.Assignment:
		return c.compileAssignment(e)
	case *ast.Call:
		return c.compileCall(e)
	case *ast.BinaryOp:
		return c.compileBinaryOp(e)
	case *ast.UnaryOp:
		// The grammar never constructs a UnaryOp (spec §4.2 has no unary
		// production); reaching here is a parser/AST invariant violation.
		invariant.Unimplemented("unary operators")
		return asm.Operand{}, nil, nil
	default:
		invariant.Unreachable("unknown expression type %T", expr)
		return asm.Operand{}, nil, nil
	}
}

func (c *Compiler) compileIdentifier(e *ast.Identifier) (asm.Operand, *types.Type, error) {
	v, ok := c.vars.Lookup(e.Name)
	if !ok {
		return asm.Operand{}, nil, &diag.CompileError{
			Kind: diag.UndeclaredIdentifier, Span: e.Span(), Name: e.Name, Colorize: c.colorize,
		}
	}
	return asm.StackSlot(v.StackOffset, widthOf(v.Type)), v.Type, nil
}

// constantType infers an integer constant's type from its suffix flags and
// value, per spec §8: a literal is 32-bit by default (`0`, `0x0`, `0b0` all
// parse to value 0, signed, 32-bit), widened to 64-bit when an `l`/`L`
// suffix forces it or the value overflows its 32-bit range (signed:
// `2147483648` with no suffix; unsigned: anything past 0xffffffff), and
// `u`/`U` selects unsigned at whichever width is chosen -- so
// `2147483648u` still fits as 32-bit unsigned.
func constantType(c *ast.Constant) *types.Type {
	if c.IsLong {
		return types.NewInteger(64, c.IsSigned)
	}
	if c.IsSigned && c.Value > 0x7fffffff {
		return types.NewInteger(64, true)
	}
	if !c.IsSigned && c.Value > 0xffffffff {
		return types.NewInteger(64, false)
	}
	return types.NewInteger(32, c.IsSigned)
}

func (c *Compiler) compileConstant(e *ast.Constant) asm.Operand {
	return asm.Immediate(e.Value)
}

func (c *Compiler) compileAssignment(e *ast.Assignment) (asm.Operand, *types.Type, error) {
	v, ok := c.vars.Lookup(e.AssigneeName)
	if !ok {
		return asm.Operand{}, nil, &diag.CompileError{
			Kind: diag.UndeclaredIdentifier, Span: e.Span(), Name: e.AssigneeName, Colorize: c.colorize,
		}
	}
	rhsVal, rhsType, err := c.compileExpression(e.Rhs)
	if err != nil {
		return asm.Operand{}, nil, err
	}
	if !types.CanCoerce(v.Type, rhsType) {
		return asm.Operand{}, nil, &diag.CompileError{
			Kind: diag.IncompatibleTypes, Span: e.Span(),
			First: v.Type, Second: rhsType, Colorize: c.colorize,
		}
	}
	slot := asm.StackSlot(v.StackOffset, widthOf(v.Type))
	c.body.EmitAssignment(slot, rhsVal, v.Type, rhsType, scratch(widthOf(v.Type)))
	return slot, v.Type, nil
}

// compileBinaryOp implements spec §4.7's BinaryOp rule: compile LHS,
// spilling it to a temporary if it came back in a register (so RHS's own
// codegen is free to clobber registers); compile RHS; compute the
// promoted result type; move RHS into RBX and LHS into RAX -- in that
// order, since RHS may itself still be sitting in RAX from a call and
// must be read before RAX is overwritten -- then emit the operator.
func (c *Compiler) compileBinaryOp(b *ast.BinaryOp) (asm.Operand, *types.Type, error) {
	lhsVal, lhsType, err := c.compileExpression(b.Lhs)
	if err != nil {
		return asm.Operand{}, nil, err
	}

	spilledBytes := 0
	if lhsVal.IsRegister() {
		size := types.SizeBytes(lhsType)
		slot := c.allocateTemporary(size, widthOf(lhsType))
		c.body.EmitAssignment(slot, lhsVal, lhsType, lhsType, scratch(widthOf(lhsType)))
		lhsVal = slot
		spilledBytes = size
	}

	rhsVal, rhsType, err := c.compileExpression(b.Rhs)
	if err != nil {
		return asm.Operand{}, nil, err
	}

	resultType := types.Promote(lhsType, rhsType)
	if !types.CanCoerce(resultType, lhsType) || !types.CanCoerce(resultType, rhsType) {
		return asm.Operand{}, nil, &diag.CompileError{
			Kind: diag.IncompatibleTypesWithBinaryOp, Span: b.Span(),
			BinaryOp: b.Kind.String(), First: lhsType, Second: rhsType, Colorize: c.colorize,
		}
	}

	width := widthOf(resultType)
	rax := asm.Reg(asm.RAX, width)
	rbx := asm.Reg(asm.RBX, width)
	c.body.EmitAssignment(rbx, rhsVal, resultType, rhsType, scratch(width))
	c.body.EmitAssignment(rax, lhsVal, resultType, lhsType, scratch(width))

	switch b.Kind {
	case ast.Add:
		c.body.Emit2(asm.OpAdd, rax, rbx)
	case ast.Sub:
		c.body.Emit2(asm.OpSub, rax, rbx)
	case ast.Mul:
		c.body.Emit2(asm.OpImul, rax, rbx)
	case ast.Div:
		c.body.Emit0(asm.OpCdq)
		c.body.Emit1(asm.OpIdiv, rbx)
	default:
		invariant.Unreachable("unknown binary operator kind %v", b.Kind)
	}

	if spilledBytes > 0 {
		c.freeTemporary(spilledBytes)
	}
	return rax, resultType, nil
}

type compiledArgument struct {
	value     asm.Operand
	typ       *types.Type
	paramType *types.Type
	spilled   bool
}

// compileCall implements spec §4.7's Call rule: look up the callee and
// check its arity, compile each argument in source order (spilling any
// that land in a register, so a later argument's codegen is free to
// clobber it), reserve the stack-passed argument space, then place every
// argument -- registers and stack slots alike -- in reverse order, since
// a later argument's placement must not be allowed to disturb an earlier
// one still waiting to be read out of its original location.
func (c *Compiler) compileCall(call *ast.Call) (asm.Operand, *types.Type, error) {
	entry, ok := c.funcs.Lookup(call.CalleeName)
	if !ok {
		return asm.Operand{}, nil, &diag.CompileError{
			Kind: diag.UndeclaredIdentifier, Span: call.Span(), Name: call.CalleeName, Colorize: c.colorize,
		}
	}
	params := entry.Signature.Parameters
	if len(call.Args) != len(params) {
		return asm.Operand{}, nil, &diag.CompileError{
			Kind: diag.IncorrectArgumentCount, Span: call.Span(),
			FunctionName: call.CalleeName, ExpectedArgCount: len(params), GotArgCount: len(call.Args), Colorize: c.colorize,
		}
	}

	args := make([]compiledArgument, len(call.Args))
	for i, argExpr := range call.Args {
		value, valueType, err := c.compileExpression(argExpr)
		if err != nil {
			return asm.Operand{}, nil, err
		}
		paramType := params[i]
		if !types.CanCoerce(paramType, valueType) {
			return asm.Operand{}, nil, &diag.CompileError{
				Kind: diag.IncompatibleTypes, Span: argExpr.Span(),
				First: paramType, Second: valueType, Colorize: c.colorize,
			}
		}
		if value.IsRegister() {
			slot := c.allocateTemporary(8, asm.QWord)
			c.body.EmitAssignment(slot, value, paramType, valueType, scratch(asm.QWord))
			args[i] = compiledArgument{value: slot, typ: paramType, paramType: paramType, spilled: true}
		} else {
			args[i] = compiledArgument{value: value, typ: valueType, paramType: paramType}
		}
	}

	argCtx := asm.NewArgumentLocationContext()
	locations := make([]asm.Operand, len(args))
	for i := range args {
		locations[i] = argCtx.Next(asm.RSP, 0)
	}
	stackBytes := argCtx.StackBytesConsumed()
	if stackBytes > 0 {
		c.body.Emit2(asm.OpSub, asm.Reg(asm.RSP, asm.QWord), asm.Immediate(uint64(stackBytes)))
	}

	for i := len(args) - 1; i >= 0; i-- {
		a := args[i]
		c.body.EmitAssignment(locations[i], a.value, a.paramType, a.typ, scratch(asm.QWord))
	}

	c.body.Emit1(asm.OpCall, asm.LabelOperand(call.CalleeName))
	if stackBytes > 0 {
		c.body.Emit2(asm.OpAdd, asm.Reg(asm.RSP, asm.QWord), asm.Immediate(uint64(stackBytes)))
	}
	for i := len(args) - 1; i >= 0; i-- {
		if args[i].spilled {
			c.freeTemporary(8)
		}
	}

	return asm.Reg(asm.RAX, widthOf(entry.Signature.ReturnType)), entry.Signature.ReturnType, nil
}
