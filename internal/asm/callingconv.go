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

// ArgumentLocationContext walks the System V AMD64 integer/pointer
// argument placement for one function signature: the first six
// arguments land in RDI/RSI/RDX/RCX/R8/R9 in order, and every argument
// after that is treated as an 8-byte stack slot (a simplification that
// never packs a narrower stack-passed argument into fewer bytes).
type ArgumentLocationContext struct {
	intArgumentIndex  int
	stackDisplacement int
}

// NewArgumentLocationContext creates a cursor at the first argument.
func NewArgumentLocationContext() *ArgumentLocationContext {
	return &ArgumentLocationContext{}
}

// Next returns the Operand addressing the next argument's location and
// advances the cursor. Register arguments are returned at qword width.
// Stack-passed arguments are rendered relative to stackBase+baseDisp,
// letting the caller supply RSP+0 when placing an outgoing argument at a
// call site, or RBP+16 when reading an incoming one back out of the
// caller's pushed arguments during the callee's prologue.
func (c *ArgumentLocationContext) Next(stackBase IntReg, baseDisp int) Operand {
	if c.intArgumentIndex < len(argumentRegisters) {
		reg := ArgumentRegister(c.intArgumentIndex)
		c.intArgumentIndex++
		return Reg(reg, QWord)
	}
	op := Memory(stackBase, baseDisp+c.stackDisplacement, QWord)
	c.stackDisplacement += 8
	return op
}

// StackBytesConsumed returns the number of stack bytes the arguments
// placed so far beyond the register-passed ones occupy -- what a caller
// must add back to RSP after the call returns.
func (c *ArgumentLocationContext) StackBytesConsumed() int {
	return c.stackDisplacement
}
