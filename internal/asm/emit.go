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
package asm

import (
	"fmt"

	"github.com/nanocc/nanocc/internal/types"
)

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// EmitFunctionPrologue writes `push rbp; mov rbp, rsp` and, when the frame
// needs stack space, `sub rsp, align_up(stack, 16)`.
func (w *Writer) EmitFunctionPrologue(stack int) {
	w.Emit1(OpPush, Reg(RBP, QWord))
	w.Emit2(OpMov, Reg(RBP, QWord), Reg(RSP, QWord))
	if stack > 0 {
		w.Emit2(OpSub, Reg(RSP, QWord), Immediate(uint64(AlignUp(stack, 16))))
	}
}

// EmitFunctionEpilogue writes `leave; ret`.
func (w *Writer) EmitFunctionEpilogue() {
	w.Emit0(OpLeave)
	w.Emit0(OpRet)
}

// widthForSize maps a byte count to the register/memory width that
// addresses exactly that many bytes; only 1/2/4/8 are realized since
// those are the only sizes this compiler's type system produces.
func widthForSize(n int) Width {
	switch n {
	case 1:
		return Byte
	case 2:
		return Word
	case 4:
		return DWord
	case 8:
		return QWord
	default:
		panic(fmt.Sprintf("asm: no register width addresses %d bytes", n))
	}
}

func minWidth(a, b Width) Width {
	if a < b {
		return a
	}
	return b
}

// EmitMove implements emit_move: a no-op when src and dst are the same
// location; a single mov when either operand is a register or src is an
// immediate; otherwise two movs routed through scratch, since x86 forbids
// a memory-to-memory mov. dst must not be an immediate or a label.
//
// A single mov instruction's two operands must share one width, so when
// dst_w and src_w differ the narrower one wins: a register operand can
// always be referenced at a narrower sub-register view, which is exactly
// how a truncating store (storing a wider register's value into a
// narrower destination) is expressed in this fixed scheme.
func (w *Writer) EmitMove(dst, src Operand, dstWidth, srcWidth Width, scratch Operand) {
	if dst.IsImmediate() || dst.Kind == KindLabel {
		panic("asm: emit_move destination must not be an immediate or label")
	}
	if dst.Equal(src) {
		return
	}
	if dst.IsRegister() || src.IsRegister() || src.IsImmediate() {
		width := minWidth(dstWidth, srcWidth)
		w.Emit2(OpMov, withWidth(dst, width), withWidth(src, width))
		return
	}
	w.Emit2(OpMov, withWidth(scratch, srcWidth), withWidth(src, srcWidth))
	w.Emit2(OpMov, withWidth(dst, dstWidth), withWidth(scratch, dstWidth))
}

func withWidth(o Operand, w Width) Operand {
	o.Width = w
	return o
}

func withDisp(o Operand, deltaBytes int) Operand {
	o.Disp += deltaBytes
	return o
}

// EmitMoveBytes implements emit_move_bytes: a single width-appropriate
// move for n <= 8 bytes; for larger n, a greedy sequence of QWord/DWord/
// Word/Byte moves walking both operands by the chunk size consumed. A
// register destination is disallowed once more than one chunk is needed.
func (w *Writer) EmitMoveBytes(dst, src Operand, n int, scratch Operand) {
	if n <= 8 {
		width := widthForSize(n)
		w.EmitMove(dst, src, width, width, scratch)
		return
	}
	if dst.IsRegister() {
		panic("asm: emit_move_bytes of more than 8 bytes disallows a register destination")
	}
	offset := 0
	for _, chunk := range []int{8, 4, 2, 1} {
		for n-offset >= chunk {
			width := widthForSize(chunk)
			w.EmitMove(withDisp(dst, offset), withDisp(src, offset), width, width, scratch)
			offset += chunk
		}
	}
}

// EmitAssignment implements emit_assignment: a same-width bytewise copy
// when dst and src share a type, otherwise the integer-conversion rules
// of spec §4.5 -- truncation on store when the source is wider, `cdqe`
// for the specific 32-bit-signed-to-64-bit-signed widening, and
// movsx/movzx for every other widening, driven through RAX when the
// destination isn't itself a register.
func (w *Writer) EmitAssignment(dst, src Operand, dstType, srcType *types.Type, scratch Operand) {
	if types.Equal(dstType, srcType) {
		w.EmitMoveBytes(dst, src, types.SizeBytes(dstType), scratch)
		return
	}

	dstWidth := widthForSize(types.SizeBytes(dstType))
	srcWidth := widthForSize(types.SizeBytes(srcType))

	if srcType.IntSize >= dstType.IntSize {
		w.EmitMove(dst, src, dstWidth, srcWidth, scratch)
		return
	}

	if dstType.IntSize == 64 && dstType.IntSigned && srcType.IntSize == 32 && srcType.IntSigned {
		w.emitCdqeWiden(dst, src, dstWidth, srcWidth, scratch)
		return
	}

	// Unsigned 32-to-64 widening is the one case spec §4.5's "else movzx"
	// rule can't mean literally: `movzx reg64, r/m32` isn't an encodable
	// x86-64 instruction, since a plain 32-bit mov already zero-extends
	// into the full 64-bit register. When dst is itself a register, a
	// plain 32-bit mov does the zero-extension for free; otherwise the
	// upper 4 bytes of the 64-bit memory destination still need writing,
	// so load through a QWord scratch register first. Every other
	// widening (8/16-bit sources, or a signed 32-to-64 source handled
	// above via cdqe) still uses movsx/movzx as spec'd.
	if dstType.IntSize == 64 && srcType.IntSize == 32 && !srcType.IntSigned {
		if dst.IsRegister() {
			w.EmitMove(dst, src, DWord, DWord, scratch)
			return
		}
		w.Emit2(OpMov, withWidth(scratch, DWord), withWidth(src, DWord))
		w.EmitMove(dst, withWidth(scratch, QWord), QWord, QWord, scratch)
		return
	}

	extendOp := OpMovzx
	if srcType.IntSigned {
		extendOp = OpMovsx
	}
	w.emitExtend(extendOp, dst, src, dstWidth, srcWidth, scratch)
}

// emitCdqeWiden implements the 32-bit-signed-to-64-bit-signed widening:
// `cdqe` only ever operates on EAX/RAX, so the source is loaded into EAX
// first regardless of whether dst is itself a register.
func (w *Writer) emitCdqeWiden(dst, src Operand, dstWidth, srcWidth Width, scratch Operand) {
	w.Emit2(OpMov, Reg(RAX, srcWidth), withWidth(src, srcWidth))
	w.Emit0(OpCdqe)
	w.EmitMove(dst, Reg(RAX, dstWidth), dstWidth, dstWidth, scratch)
}

// emitExtend performs movsx/movzx, routing through RAX first when dst
// isn't itself a register (spec: "when the destination is not a
// register, the extension is done into RAX then stored").
func (w *Writer) emitExtend(op Opcode, dst, src Operand, dstWidth, srcWidth Width, scratch Operand) {
	if dst.IsRegister() {
		w.Emit2(op, withWidth(dst, dstWidth), withWidth(src, srcWidth))
		return
	}
	rax := Reg(RAX, dstWidth)
	w.Emit2(op, rax, withWidth(src, srcWidth))
	w.EmitMove(dst, rax, dstWidth, dstWidth, scratch)
}
