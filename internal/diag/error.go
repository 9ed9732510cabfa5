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
package diag

import "fmt"

// CompileErrorKind tags a CompileError's active payload, grounded on
// original_source's compile/error.h enum plus the two kinds its
// format_compile_error.c handles without ever declaring in that enum
// (IncompatibleTypesWithBinaryOp, IncorrectArgumentCount) -- folded in
// here rather than reproduced as an inconsistency.
type CompileErrorKind int

const (
	Unknown CompileErrorKind = iota
	NotImplemented
	UndeclaredIdentifier
	IncompatibleTypes
	IncompatibleTypesWithBinaryOp
	IncorrectArgumentCount
	VariableRedeclaration
	FunctionRedefinition
	FunctionSignatureMismatch
)

// Stringer is satisfied by *types.Type without importing the types
// package here (diag sits below types in the dependency graph).
type Stringer interface {
	String() string
}

// CompileError is the semantic-analysis / code-generation error surfaced
// to the caller, per spec §7.
type CompileError struct {
	Kind CompileErrorKind
	Span Span

	Name string

	First, Second Stringer // IncompatibleTypes[WithBinaryOp]
	BinaryOp      string   // IncompatibleTypesWithBinaryOp

	FunctionName     string // IncorrectArgumentCount
	ExpectedArgCount int
	GotArgCount      int

	Colorize bool
}

func (e *CompileError) Error() string {
	var b []byte
	b = append(b, e.Span.String()...)
	b = append(b, ' ')
	switch e.Kind {
	case Unknown:
		b = append(b, "unknown error"...)
	case NotImplemented:
		b = append(b, "not implemented"...)
	case UndeclaredIdentifier:
		b = append(b, "undeclared identifier: "...)
		b = append(b, e.Name...)
	case IncompatibleTypes:
		b = append(b, fmt.Sprintf("incompatible types: %v and %v", e.First, e.Second)...)
	case IncompatibleTypesWithBinaryOp:
		b = append(b, fmt.Sprintf("incompatible types for binary operator %s: %v and %v", e.BinaryOp, e.First, e.Second)...)
	case IncorrectArgumentCount:
		b = append(b, fmt.Sprintf("incorrect argument count for function %s: expected %d, got %d", e.FunctionName, e.ExpectedArgCount, e.GotArgCount)...)
	case VariableRedeclaration:
		b = append(b, "redeclaration of "...)
		b = append(b, Magenta(e.Name, e.Colorize)...)
	case FunctionRedefinition:
		b = append(b, "redefinition of "...)
		b = append(b, Magenta(e.Name, e.Colorize)...)
	case FunctionSignatureMismatch:
		b = append(b, "mismatched function signature in "...)
		b = append(b, Magenta(e.Name, e.Colorize)...)
	}
	return string(b)
}
