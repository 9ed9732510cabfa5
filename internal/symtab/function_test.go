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
package symtab

import (
	"testing"

	"github.com/nanocc/nanocc/internal/types"
)

func sig(ret *types.Type, params ...*types.Type) Signature {
	return Signature{ReturnType: ret, Parameters: params}
}

func TestFunctionDeclareThenDefine(t *testing.T) {
	table := NewFunctionTable()
	s := sig(types.Int32, types.Int32)
	if _, err := table.Declare("f", s); err != nil {
		t.Fatalf("Declare: unexpected error: %v", err)
	}
	entry, ok := table.Lookup("f")
	if !ok || entry.HasDefinition() {
		t.Fatalf("after Declare: entry = %+v, ok = %v; want present and not yet defined", entry, ok)
	}
	if _, err := table.Define("f", s); err != nil {
		t.Fatalf("Define: unexpected error: %v", err)
	}
	entry, _ = table.Lookup("f")
	if !entry.HasDefinition() {
		t.Errorf("after Define: HasDefinition() = false, want true")
	}
}

func TestFunctionDefineWithoutPriorDeclare(t *testing.T) {
	table := NewFunctionTable()
	s := sig(types.VoidType)
	if _, err := table.Define("g", s); err != nil {
		t.Fatalf("Define: unexpected error: %v", err)
	}
	entry, ok := table.Lookup("g")
	if !ok || !entry.HasDefinition() {
		t.Fatalf("entry = %+v, ok = %v; want present and defined", entry, ok)
	}
}

func TestFunctionRedefinitionFails(t *testing.T) {
	table := NewFunctionTable()
	s := sig(types.Int32)
	if _, err := table.Define("f", s); err != nil {
		t.Fatalf("first Define: unexpected error: %v", err)
	}
	_, err := table.Define("f", s)
	if _, ok := err.(*RedefinitionError); !ok {
		t.Fatalf("second Define = %v, want *RedefinitionError", err)
	}
}

func TestFunctionSignatureMismatchOnRedeclare(t *testing.T) {
	table := NewFunctionTable()
	if _, err := table.Declare("f", sig(types.Int32, types.Int32)); err != nil {
		t.Fatalf("Declare: unexpected error: %v", err)
	}
	_, err := table.Declare("f", sig(types.Int32, types.Int64))
	if _, ok := err.(*SignatureMismatchError); !ok {
		t.Fatalf("Declare with different signature = %v, want *SignatureMismatchError", err)
	}
}

func TestFunctionEntriesPreserveInsertionOrder(t *testing.T) {
	table := NewFunctionTable()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		if _, err := table.Declare(n, sig(types.VoidType)); err != nil {
			t.Fatalf("Declare(%s): unexpected error: %v", n, err)
		}
	}
	entries := table.Entries()
	if len(entries) != len(names) {
		t.Fatalf("got %d entries, want %d", len(entries), len(names))
	}
	for i, n := range names {
		if entries[i].Name != n {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, n)
		}
	}
}
