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

// Package invariant carries the compiler's internal-error checks: wrong
// opcode arity, an unknown enum tag, emitting a mov with forbidden
// operands -- programmer bugs rather than user-facing diagnostics, so
// they abort immediately rather than returning an error value. Adapted
// from falcon's utils.Assert/Unimplement/ShouldNotReachHere, trimmed to
// the three forms this compiler's codegen and assembler actually use.
package invariant

import "fmt"

// Check panics with a formatted message if cond is false.
func Check(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Unreachable panics; call it from a switch arm that every exhaustive
// case analysis should already have ruled out.
func Unreachable(format string, args ...interface{}) {
	panic(fmt.Sprintf("should not reach here: "+format, args...))
}

// Unimplemented panics for a recognized-but-unrealized case, e.g. the
// reserved struct/union/enum/pointer/float type kinds.
func Unimplemented(what string) {
	panic(fmt.Sprintf("not implemented: %s", what))
}
