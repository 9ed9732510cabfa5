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

import "testing"

func TestOpcodeArity(t *testing.T) {
	cases := []struct {
		op   Opcode
		want int
	}{
		{OpMov, 2}, {OpPush, 1}, {OpRet, 0}, {OpIdiv, 1}, {OpCdqe, 0}, {OpCall, 1},
	}
	for _, c := range cases {
		if got := c.op.Arity(); got != c.want {
			t.Errorf("%v.Arity() = %d, want %d", c.op, got, c.want)
		}
	}
}

func TestOpcodeArityPanicsOnUnknownOpcode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Arity() on an unknown opcode did not panic")
		}
	}()
	Opcode(999).Arity()
}

func TestWriteInstructionPanicsOnArityMismatch(t *testing.T) {
	w := NewWriter()
	defer func() {
		if recover() == nil {
			t.Errorf("WriteInstruction did not panic on an arity mismatch")
		}
	}()
	w.WriteInstruction(Instruction{Op: OpMov, Operands: []Operand{Reg(RAX, QWord)}})
}

func TestEmit2RendersMovLine(t *testing.T) {
	w := NewWriter()
	w.Emit2(OpMov, Reg(RAX, QWord), Immediate(5))
	got := w.String()
	want := "\tmov rax, 5\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteLabel(t *testing.T) {
	w := NewWriter()
	w.WriteLabel(Label("main"))
	if w.String() != "main:\n" {
		t.Errorf("got %q, want %q", w.String(), "main:\n")
	}
}

func TestOperandTextMemoryWithIndex(t *testing.T) {
	w := NewWriter()
	w.Emit2(OpMov, Reg(RAX, QWord), MemoryIndexed(RBP, RCX, 4, -8, DWord))
	got := w.String()
	want := "\tmov rax, dword [rbp+rcx*4-8]\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
