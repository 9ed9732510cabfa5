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
package types

import "testing"

func TestEqual(t *testing.T) {
	if !Equal(Int32, Int32) {
		t.Errorf("Int32 should equal itself")
	}
	if Equal(Int32, UInt32) {
		t.Errorf("Int32 should not equal UInt32 (signedness differs)")
	}
	if Equal(Int32, Int64) {
		t.Errorf("Int32 should not equal Int64 (width differs)")
	}
	if !Equal(nil, nil) {
		t.Errorf("nil should equal nil")
	}
	if Equal(Int32, nil) {
		t.Errorf("Int32 should not equal nil")
	}
}

func TestCanCoerce(t *testing.T) {
	cases := []struct {
		dst, src *Type
		want     bool
	}{
		{Int32, Int32, true},
		{Int32, UInt8, true},
		{UInt64, Int8, true},
		{VoidType, Int32, false},
	}
	for _, c := range cases {
		if got := CanCoerce(c.dst, c.src); got != c.want {
			t.Errorf("CanCoerce(%v, %v) = %v, want %v", c.dst, c.src, got, c.want)
		}
	}
}

func TestPromoteWidensNarrowerThan32(t *testing.T) {
	got := Promote(Int8, Int8)
	if got.IntSize != 32 || !got.IntSigned {
		t.Errorf("Promote(int8, int8) = %v, want int32", got)
	}
}

func TestPromoteHigherScoreWins(t *testing.T) {
	got := Promote(Int32, UInt32)
	if got != UInt32 {
		t.Errorf("Promote(int32, uint32) = %v, want uint32 (unsigned outranks signed at equal width)", got)
	}
}

func TestPromoteTieBreaksTowardFirstOperand(t *testing.T) {
	got := Promote(Int64, Int64)
	if got != Int64 {
		t.Errorf("Promote(int64, int64) = %v, want int64", got)
	}
	got = Promote(UInt64, Int64)
	if got != UInt64 {
		t.Errorf("Promote(uint64, int64) = %v, want uint64 (unsigned has the higher score)", got)
	}
}

func TestSizeBytes(t *testing.T) {
	cases := []struct {
		typ  *Type
		want int
	}{
		{Int8, 1}, {Int16, 2}, {Int32, 4}, {Int64, 8},
	}
	for _, c := range cases {
		if got := SizeBytes(c.typ); got != c.want {
			t.Errorf("SizeBytes(%v) = %d, want %d", c.typ, got, c.want)
		}
	}
}

func TestStringFormat(t *testing.T) {
	if Int32.String() != "int32" {
		t.Errorf("Int32.String() = %q, want int32", Int32.String())
	}
	if UInt8.String() != "uint8" {
		t.Errorf("UInt8.String() = %q, want uint8", UInt8.String())
	}
	if VoidType.String() != "void" {
		t.Errorf("VoidType.String() = %q, want void", VoidType.String())
	}
}

func TestNewIntegerReturnsCanonicalSingletons(t *testing.T) {
	if NewInteger(32, true) != Int32 {
		t.Errorf("NewInteger(32, true) did not return the canonical Int32 singleton")
	}
	if NewInteger(8, false) != UInt8 {
		t.Errorf("NewInteger(8, false) did not return the canonical UInt8 singleton")
	}
}
