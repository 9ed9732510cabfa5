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
	"strings"
)

// Label is a bare text label, written verbatim with no leading sigil.
type Label string

// Writer accumulates assembly text into one growing buffer. It never
// inspects or mutates program state beyond the text it's given -- pure
// formatting, per spec §4.5.
type Writer struct {
	buf strings.Builder
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// Raw appends text verbatim, useful for section headers and comments.
func (w *Writer) Raw(text string) {
	w.buf.WriteString(text)
}

// WriteLabel emits "name:\n".
func (w *Writer) WriteLabel(name Label) {
	fmt.Fprintf(&w.buf, "%s:\n", string(name))
}

// operandText renders one operand in NASM syntax: immediates as unsigned
// decimal, labels verbatim, registers by (register, width), and memory as
// "<width> [base±disp]" or "<width> [base+index*scale±disp]".
func operandText(o Operand) string {
	switch o.Kind {
	case KindImmediate:
		return fmt.Sprintf("%d", o.ImmediateValue)
	case KindLabel:
		return o.LabelName
	case KindRegister:
		return o.Reg.Name(o.Width)
	case KindMemory:
		var addr strings.Builder
		addr.WriteString(o.Base.Name(QWord))
		if o.HasIndex {
			fmt.Fprintf(&addr, "+%s*%d", o.Index.Name(QWord), o.Scale)
		}
		if o.Disp > 0 {
			fmt.Fprintf(&addr, "+%d", o.Disp)
		} else if o.Disp < 0 {
			fmt.Fprintf(&addr, "-%d", -o.Disp)
		}
		return fmt.Sprintf("%s [%s]", o.Width, addr.String())
	default:
		return "?operand"
	}
}

// WriteInstruction asserts instr.Op's fixed arity against the supplied
// operand count (invariant 4), then emits a tab-indented line.
func (w *Writer) WriteInstruction(instr Instruction) {
	if len(instr.Operands) != instr.Op.Arity() {
		panic(fmt.Sprintf("asm: %s expects %d operands, got %d", instr.Op, instr.Op.Arity(), len(instr.Operands)))
	}
	w.buf.WriteByte('\t')
	w.buf.WriteString(instr.Op.String())
	for i, operand := range instr.Operands {
		if i == 0 {
			w.buf.WriteByte(' ')
		} else {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(operandText(operand))
	}
	w.buf.WriteByte('\n')
}

// Emit0 writes a zero-operand instruction (ret, leave, cdq, cdqe).
func (w *Writer) Emit0(op Opcode) {
	w.WriteInstruction(Instruction{Op: op})
}

// Emit1 writes a one-operand instruction (push, pop, idiv, call).
func (w *Writer) Emit1(op Opcode, a Operand) {
	w.WriteInstruction(Instruction{Op: op, Operands: []Operand{a}})
}

// Emit2 writes a two-operand instruction (mov, movsx, movzx, add, sub, imul).
func (w *Writer) Emit2(op Opcode, dst, src Operand) {
	w.WriteInstruction(Instruction{Op: op, Operands: []Operand{dst, src}})
}
