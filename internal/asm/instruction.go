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

import "fmt"

// Opcode is an assembly mnemonic tagged with its fixed operand arity, so
// emission can assert invariant 4 ("the assembly writer never emits an
// instruction with an operand count different from its opcode's fixed
// arity") before a malformed instruction is ever written out.
type Opcode int

const (
	OpPush Opcode = iota
	OpPop
	OpMov
	OpMovsx
	OpMovzx
	OpCdqe
	OpCdq
	OpAdd
	OpSub
	OpImul
	OpIdiv
	OpLeave
	OpRet
	OpCall
)

var mnemonics = map[Opcode]string{
	OpPush:  "push",
	OpPop:   "pop",
	OpMov:   "mov",
	OpMovsx: "movsx",
	OpMovzx: "movzx",
	OpCdqe:  "cdqe",
	OpCdq:   "cdq",
	OpAdd:   "add",
	OpSub:   "sub",
	OpImul:  "imul",
	OpIdiv:  "idiv",
	OpLeave: "leave",
	OpRet:   "ret",
	OpCall:  "call",
}

var arity = map[Opcode]int{
	OpPush:  1,
	OpPop:   1,
	OpMov:   2,
	OpMovsx: 2,
	OpMovzx: 2,
	OpCdqe:  0,
	OpCdq:   0,
	OpAdd:   2,
	OpSub:   2,
	OpImul:  2,
	OpIdiv:  1,
	OpLeave: 0,
	OpRet:   0,
	OpCall:  1,
}

func (o Opcode) String() string {
	if s, ok := mnemonics[o]; ok {
		return s
	}
	return "?opcode"
}

// Arity returns the fixed number of operands o's mnemonic accepts.
func (o Opcode) Arity() int {
	n, ok := arity[o]
	if !ok {
		panic(fmt.Sprintf("asm: unknown opcode %d", o))
	}
	return n
}

// Instruction is one assembly-text line: an opcode plus its operands.
type Instruction struct {
	Op       Opcode
	Operands []Operand
}
