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
package ast

import (
	"testing"

	"github.com/nanocc/nanocc/internal/diag"
)

func span(startCol, endCol int) diag.Span {
	return diag.Span{
		Start: diag.Position{Line: 1, Column: startCol},
		End:   diag.Position{Line: 1, Column: endCol},
	}
}

func TestBuilderNewIdentifierPropagatesSpanAndName(t *testing.T) {
	b := NewBuilder()
	id := b.NewIdentifier(span(1, 2), "x")
	if id.Name != "x" {
		t.Errorf("Name = %q, want x", id.Name)
	}
	if id.Span() != span(1, 2) {
		t.Errorf("Span() = %v, want %v", id.Span(), span(1, 2))
	}
}

func TestBuilderNewBinaryOpHoldsOperands(t *testing.T) {
	b := NewBuilder()
	lhs := b.NewConstant(span(1, 1), 1, false, true)
	rhs := b.NewConstant(span(3, 3), 2, false, true)
	op := b.NewBinaryOp(span(1, 3), Add, lhs, rhs)
	if op.Lhs != Expr(lhs) || op.Rhs != Expr(rhs) {
		t.Errorf("BinaryOp operands were not preserved")
	}
	if op.Kind != Add {
		t.Errorf("Kind = %v, want Add", op.Kind)
	}
}

func TestBuilderAllocReturnsDistinctNodesAcrossManyCalls(t *testing.T) {
	b := NewBuilder()
	var ids []*Identifier
	for i := 0; i < 300; i++ {
		ids = append(ids, b.NewIdentifier(span(i, i), "n"))
	}
	seen := make(map[*Identifier]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("builder returned the same pointer twice across %d allocations", len(ids))
		}
		seen[id] = true
	}
}

func TestBuilderReleaseThenAllocPanics(t *testing.T) {
	b := NewBuilder()
	b.NewIdentifier(span(1, 1), "x")
	b.Release()
	defer func() {
		if recover() == nil {
			t.Errorf("NewIdentifier after Release did not panic")
		}
	}()
	b.NewIdentifier(span(2, 2), "y")
}
