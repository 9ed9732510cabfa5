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

// Package codegen is the single-pass code generator: it walks the AST
// once, performing semantic checks (type coercion, redeclaration,
// undeclared names, signature matching) inline with emission, since the
// language has no separate semantic-analysis pass (spec §4.7). Grounded
// on falcon's compile/compiler.go Compiler (scope stack, per-function
// offset bookkeeping, label emission) but rebuilt around a fixed stack-
// slot scheme instead of falcon's linear-scan register allocator, per the
// explicit non-goal of "no register allocation beyond a fixed scheme".
package codegen

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/nanocc/nanocc/internal/asm"
	"github.com/nanocc/nanocc/internal/ast"
	"github.com/nanocc/nanocc/internal/diag"
	"github.com/nanocc/nanocc/internal/invariant"
	"github.com/nanocc/nanocc/internal/symtab"
	"github.com/nanocc/nanocc/internal/types"
)

// scratchReg is the register emit_move/emit_assignment route
// memory-to-memory moves and width extensions through. R10 is
// caller-saved and never itself holds a live value across statements in
// this fixed scheme, so clobbering it is always safe.
const scratchReg = asm.R10

func scratch(w asm.Width) asm.Operand { return asm.Reg(scratchReg, w) }

// Compiler holds all per-compilation state: the output sections, the
// current lexical scope, the module-wide function table, and the current
// function's offset bookkeeping.
type Compiler struct {
	dataWriter *asm.Writer
	textWriter *asm.Writer
	body       *asm.Writer

	vars    *symtab.VariableTable
	funcs   *symtab.FunctionTable
	retType *types.Type

	stackOffset          int
	stackOffsetTemporary int
	stackOffsetMax       int

	colorize bool
}

// New creates a Compiler. colorize controls whether diagnostic messages
// carry ANSI color around identifier names.
func New(colorize bool) *Compiler {
	return &Compiler{
		dataWriter: asm.NewWriter(),
		textWriter: asm.NewWriter(),
		funcs:      symtab.NewFunctionTable(),
		colorize:   colorize,
	}
}

// CompileRoot runs compile(root): it prefixes the module header, then
// dispatches each top-level item, returning the full assembly text.
func (c *Compiler) CompileRoot(root *ast.Root) (string, error) {
	for _, item := range root.Items {
		switch item := item.(type) {
		case *ast.FunctionDefinition:
			if err := c.compileFunctionDefinition(item); err != nil {
				return "", err
			}
		default:
			invariant.Unreachable("unknown top-level item %T", item)
		}
	}

	out := "global main\n"
	out += "section .data\n"
	out += c.dataWriter.String()
	out += "section .text\n"
	out += c.textWriter.String()
	return out, nil
}

func signatureOf(sig ast.Signature) symtab.Signature {
	params := lo.Map(sig.Parameters, func(p ast.Parameter, _ int) *types.Type { return p.Type })
	return symtab.Signature{ReturnType: sig.ReturnType, Parameters: params}
}

// compileFunctionDefinition implements spec §4.7's top-level function
// steps: register the signature, push a scope, move parameters into
// their stack slots, compile the body, close the scope.
func (c *Compiler) compileFunctionDefinition(fn *ast.FunctionDefinition) error {
	sig := signatureOf(fn.Signature)
	if _, err := c.funcs.Define(fn.Signature.Name, sig); err != nil {
		return c.wrapFunctionTableError(fn.Span(), fn.Signature.Name, err)
	}

	c.vars = symtab.PushScope(nil)
	c.stackOffset = 0
	c.stackOffsetTemporary = 0
	c.stackOffsetMax = 0
	c.retType = fn.Signature.ReturnType
	c.body = asm.NewWriter()

	argCtx := asm.NewArgumentLocationContext()
	for _, param := range fn.Signature.Parameters {
		if param.Name == "" {
			argCtx.Next(asm.RBP, 16) // abstract parameter: still consumes a location
			continue
		}
		slot, err := c.declareLocal(param.Name, param.Type, fn.Span().Start)
		if err != nil {
			c.vars = c.vars.PopScope()
			return err
		}
		width := widthOf(param.Type)
		argLoc := argCtx.Next(asm.RBP, 16)
		c.body.EmitMove(slot, argLoc, width, asm.QWord, scratch(asm.QWord))
	}

	if err := c.compileBlock(fn.Body); err != nil {
		c.vars = c.vars.PopScope()
		return err
	}
	if !lastStatementIsReturn(fn.Body) {
		c.body.EmitFunctionEpilogue()
	}

	c.textWriter.WriteLabel(asm.Label(fn.Signature.Name))
	c.textWriter.EmitFunctionPrologue(c.stackOffsetMax)
	c.textWriter.Raw(c.body.String())

	c.vars = c.vars.PopScope()
	return nil
}

func (c *Compiler) wrapFunctionTableError(span diag.Span, name string, err error) error {
	switch err.(type) {
	case *symtab.SignatureMismatchError:
		return &diag.CompileError{Kind: diag.FunctionSignatureMismatch, Span: span, Name: name, Colorize: c.colorize}
	case *symtab.RedefinitionError:
		return &diag.CompileError{Kind: diag.FunctionRedefinition, Span: span, Name: name, Colorize: c.colorize}
	default:
		invariant.Unreachable("unexpected function table error %T", err)
		return nil
	}
}

// widthOf returns the register/memory width addressing a type's full
// size; only integer and pointer types are realized.
func widthOf(t *types.Type) asm.Width {
	switch t.Kind {
	case types.Integer:
		switch t.IntSize {
		case 8:
			return asm.Byte
		case 16:
			return asm.Word
		case 32:
			return asm.DWord
		default:
			return asm.QWord
		}
	case types.Pointer:
		return asm.QWord
	default:
		invariant.Unimplemented(fmt.Sprintf("widthOf(%v)", t))
		return asm.QWord
	}
}

// declareLocal binds name in the current scope at a freshly allocated
// stack slot, aligned up to the type's alignment, then advances
// stack_offset by the type's size. A name already bound in the current
// scope is a user-facing VariableRedeclaration diagnostic, not an
// internal error.
func (c *Compiler) declareLocal(name string, t *types.Type, pos diag.Position) (asm.Operand, error) {
	align := types.AlignBytes(t)
	offset := asm.AlignUp(c.stackOffset+types.SizeBytes(t), align)
	v := symtab.Variable{Name: name, Type: t, StackOffset: offset}
	if err := c.vars.Declare(v, pos); err != nil {
		if _, ok := err.(*symtab.RedeclarationError); ok {
			return asm.Operand{}, &diag.CompileError{
				Kind: diag.VariableRedeclaration, Span: diag.Span{Start: pos, End: pos}, Name: name, Colorize: c.colorize,
			}
		}
		invariant.Unreachable("declareLocal: %v", err)
	}
	c.stackOffset = offset
	c.stackOffsetTemporary = c.stackOffset
	c.stackOffsetMax = lo.Max([]int{c.stackOffsetMax, c.stackOffsetTemporary})
	return asm.StackSlot(v.StackOffset, widthOf(t)), nil
}

// allocateTemporary advances stack_offset_temporary by n bytes (rounded
// up to n itself, since every temporary this compiler spills is already
// a whole register width) and returns the resulting slot.
func (c *Compiler) allocateTemporary(n int, w asm.Width) asm.Operand {
	c.stackOffsetTemporary = asm.AlignUp(c.stackOffsetTemporary+n, n)
	c.stackOffsetMax = lo.Max([]int{c.stackOffsetMax, c.stackOffsetTemporary})
	return asm.StackSlot(c.stackOffsetTemporary, w)
}

// freeTemporary rewinds stack_offset_temporary by n bytes.
func (c *Compiler) freeTemporary(n int) {
	c.stackOffsetTemporary -= n
}
