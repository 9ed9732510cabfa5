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

// Package types is the semantic type system: integer widths and
// signedness, equality, coercion, and the usual arithmetic conversions.
// Distinct from the parser's syntactic notion of a type (spec §3):
// Type here is tagged over the full kind set the original C project
// reserves (Struct/Enum/Union/Pointer/Float), even though only Void and
// Integer are ever constructed by this compiler's parser.
package types

import "fmt"

type Kind int

const (
	Unknown Kind = iota
	Void
	Integer
	Float
	Pointer
	Struct
	Enum
	Union
)

// Type is the semantic type of an expression, declaration, or signature.
type Type struct {
	Kind Kind

	// Populated when Kind == Integer.
	IntSize   int // bits: 8, 16, 32, or 64
	IntSigned bool

	// Populated when Kind == Pointer. Reserved: never constructed by this
	// compiler's parser (spec's pointer/struct/union/enum kinds are
	// reserved for a future revision), kept so type_can_coerce's pointer
	// rule and String have somewhere to dispatch without a nil panic.
	Pointee *Type
	IsConst bool
}

var (
	VoidType = &Type{Kind: Void}

	Int8    = &Type{Kind: Integer, IntSize: 8, IntSigned: true}
	UInt8   = &Type{Kind: Integer, IntSize: 8, IntSigned: false}
	Int16   = &Type{Kind: Integer, IntSize: 16, IntSigned: true}
	UInt16  = &Type{Kind: Integer, IntSize: 16, IntSigned: false}
	Int32   = &Type{Kind: Integer, IntSize: 32, IntSigned: true}
	UInt32  = &Type{Kind: Integer, IntSize: 32, IntSigned: false}
	Int64   = &Type{Kind: Integer, IntSize: 64, IntSigned: true}
	UInt64  = &Type{Kind: Integer, IntSize: 64, IntSigned: false}
)

// NewInteger returns the canonical Type value for the given width and
// signedness.
func NewInteger(size int, signed bool) *Type {
	switch {
	case size == 8 && signed:
		return Int8
	case size == 8 && !signed:
		return UInt8
	case size == 16 && signed:
		return Int16
	case size == 16 && !signed:
		return UInt16
	case size == 32 && signed:
		return Int32
	case size == 32 && !signed:
		return UInt32
	case size == 64 && signed:
		return Int64
	case size == 64 && !signed:
		return UInt64
	default:
		panic(fmt.Sprintf("types: invalid integer width %d", size))
	}
}

func (t *Type) IsInteger() bool { return t.Kind == Integer }
func (t *Type) IsVoid() bool    { return t.Kind == Void }

func (t *Type) IsIntegerOrPointer() bool {
	return t.Kind == Integer || t.Kind == Pointer
}

// Equal implements type_eq: same width and same signedness for integers,
// same kind (and pointee, recursively) for everything else.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Integer:
		return a.IntSize == b.IntSize && a.IntSigned == b.IntSigned
	case Pointer:
		return a.IsConst == b.IsConst && Equal(a.Pointee, b.Pointee)
	default:
		return true
	}
}

// CanCoerce implements type_can_coerce: src may be implicitly converted to
// dst when they're equal, when both are integers, when both are pointers
// (reserved), or when src is integer and dst is float (reserved).
func CanCoerce(dst, src *Type) bool {
	if Equal(dst, src) {
		return true
	}
	if dst.Kind == Integer && src.Kind == Integer {
		return true
	}
	if dst.Kind == Pointer && src.Kind == Pointer {
		return true
	}
	if dst.Kind == Float && src.Kind == Integer {
		return true
	}
	return false
}

// promotionScore orders integer types by representable-value rank:
// 2*width + (unsigned ? 1 : 0).
func promotionScore(t *Type) int {
	score := 2 * t.IntSize
	if !t.IntSigned {
		score++
	}
	return score
}

// Promote implements the usual arithmetic conversions: the higher-scored
// of a and b wins (ties break toward a), then any integer narrower than
// 32 bits is widened to 32 bits.
func Promote(a, b *Type) *Type {
	winner := a
	if promotionScore(b) > promotionScore(a) {
		winner = b
	}
	if winner.IntSize < 32 {
		return NewInteger(32, winner.IntSigned)
	}
	return winner
}

// SizeBytes returns the type's size in bytes. Integers: size-in-bytes;
// everything else is unimplemented per spec §3.
func SizeBytes(t *Type) int {
	switch t.Kind {
	case Integer:
		return t.IntSize / 8
	case Pointer:
		return 8
	default:
		panic(fmt.Sprintf("types: SizeBytes unimplemented for kind %v", t.Kind))
	}
}

// AlignBytes returns the type's required alignment, equal to its size for
// the kinds this compiler realizes.
func AlignBytes(t *Type) int {
	return SizeBytes(t)
}

// String renders a type the way diagnostics want it: "int8/int16/int32/
// int64" with a leading "u" for unsigned, "void" for Void.
func (t *Type) String() string {
	switch t.Kind {
	case Void:
		return "void"
	case Integer:
		prefix := ""
		if !t.IntSigned {
			prefix = "u"
		}
		return fmt.Sprintf("%sint%d", prefix, t.IntSize)
	case Pointer:
		return fmt.Sprintf("*%v", t.Pointee)
	case Float:
		return "float"
	case Struct:
		return "struct"
	case Enum:
		return "enum"
	case Union:
		return "union"
	default:
		return "<unknown>"
	}
}
