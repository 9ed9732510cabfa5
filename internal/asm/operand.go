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

// Package asm is the x86-64 assembly operand and instruction model plus a
// pure-formatting writer that renders NASM-compatible Intel-syntax text,
// grounded on falcon's compile/codegen register/operand tables but
// reshaped from falcon's AT&T-suffixed, LIR-driven Assembler into the
// fixed-scheme, Operand-returning calling convention and width-explicit
// emit_move/emit_assignment helpers spec §4.5-4.6 describe directly.
package asm

// Width is an operand's size in bits: 8, 16, 32, or 64.
type Width int

const (
	Byte  Width = 8
	Word  Width = 16
	DWord Width = 32
	QWord Width = 64
)

func (w Width) String() string {
	switch w {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case DWord:
		return "dword"
	case QWord:
		return "qword"
	default:
		return "?width"
	}
}

// IntReg names one of the 16 general-purpose registers, independent of
// the width it's referenced at.
type IntReg int

const (
	RAX IntReg = iota
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
)

// argumentRegisters is the System V AMD64 order integer/pointer arguments
// are placed in, per spec §4.6.
var argumentRegisters = [6]IntReg{RDI, RSI, RDX, RCX, R8, R9}

// registerNames indexes [register][width] to the NASM register name.
var registerNames = map[IntReg][4]string{
	RAX: {"al", "ax", "eax", "rax"},
	RBX: {"bl", "bx", "ebx", "rbx"},
	RCX: {"cl", "cx", "ecx", "rcx"},
	RDX: {"dl", "dx", "edx", "rdx"},
	RSI: {"sil", "si", "esi", "rsi"},
	RDI: {"dil", "di", "edi", "rdi"},
	RBP: {"bpl", "bp", "ebp", "rbp"},
	RSP: {"spl", "sp", "esp", "rsp"},
	R8:  {"r8b", "r8w", "r8d", "r8"},
	R9:  {"r9b", "r9w", "r9d", "r9"},
	R10: {"r10b", "r10w", "r10d", "r10"},
	R11: {"r11b", "r11w", "r11d", "r11"},
	R12: {"r12b", "r12w", "r12d", "r12"},
	R13: {"r13b", "r13w", "r13d", "r13"},
	R14: {"r14b", "r14w", "r14d", "r14"},
	R15: {"r15b", "r15w", "r15d", "r15"},
}

func widthIndex(w Width) int {
	switch w {
	case Byte:
		return 0
	case Word:
		return 1
	case DWord:
		return 2
	default:
		return 3
	}
}

// Name returns r's NASM spelling at width w.
func (r IntReg) Name(w Width) string {
	names, ok := registerNames[r]
	if !ok {
		return "?reg"
	}
	return names[widthIndex(w)]
}

// OperandKind tags Operand's active variant.
type OperandKind int

const (
	KindImmediate OperandKind = iota
	KindLabel
	KindRegister
	KindMemory
)

// Operand is the assembly model's tagged union of addressable values: an
// unsigned immediate, a label reference, a register at a given width, or
// a memory reference `[base + index*scale + disp]`.
type Operand struct {
	Kind OperandKind

	// KindImmediate
	ImmediateValue uint64

	// KindLabel
	LabelName string

	// KindRegister
	Reg   IntReg
	Width Width

	// KindMemory
	Base  IntReg
	Index IntReg
	Scale int
	Disp  int
	// HasIndex distinguishes "no index register" from Index == RAX.
	HasIndex bool
}

// Immediate builds an unsigned-decimal immediate operand.
func Immediate(value uint64) Operand {
	return Operand{Kind: KindImmediate, ImmediateValue: value}
}

// LabelOperand builds a bare label reference.
func LabelOperand(name string) Operand {
	return Operand{Kind: KindLabel, LabelName: name}
}

// Reg builds a register operand at the given width.
func Reg(r IntReg, w Width) Operand {
	return Operand{Kind: KindRegister, Reg: r, Width: w}
}

// Memory builds a `[base+disp]` memory operand at the given width.
func Memory(base IntReg, disp int, w Width) Operand {
	return Operand{Kind: KindMemory, Base: base, Disp: disp, Width: w}
}

// MemoryIndexed builds a `[base+index*scale+disp]` memory operand.
func MemoryIndexed(base, index IntReg, scale, disp int, w Width) Operand {
	return Operand{Kind: KindMemory, Base: base, Index: index, HasIndex: true, Scale: scale, Disp: disp, Width: w}
}

// StackSlot builds the conventional "local variable" memory operand: a
// location `stackOffset` bytes below RBP, per spec §4.2 ("stack offsets
// are positive distances below the frame base pointer; the operand
// convention negates them when emitting memory references").
func StackSlot(stackOffset int, w Width) Operand {
	return Memory(RBP, -stackOffset, w)
}

// IsRegister reports whether o addresses a register.
func (o Operand) IsRegister() bool { return o.Kind == KindRegister }

// IsMemory reports whether o addresses memory.
func (o Operand) IsMemory() bool { return o.Kind == KindMemory }

// IsImmediate reports whether o is an immediate value.
func (o Operand) IsImmediate() bool { return o.Kind == KindImmediate }

// Equal reports whether two operands address the same location.
func (o Operand) Equal(other Operand) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case KindImmediate:
		return o.ImmediateValue == other.ImmediateValue
	case KindLabel:
		return o.LabelName == other.LabelName
	case KindRegister:
		return o.Reg == other.Reg && o.Width == other.Width
	case KindMemory:
		return o.Base == other.Base && o.Index == other.Index &&
			o.HasIndex == other.HasIndex && o.Scale == other.Scale && o.Disp == other.Disp
	default:
		return false
	}
}

// ArgumentRegister returns the index-th integer argument register (0-5).
func ArgumentRegister(index int) IntReg {
	return argumentRegisters[index]
}
