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
	"fmt"

	"github.com/nanocc/nanocc/internal/types"
)

// Signature is a function's typed interface: return type, ordered
// parameter types, and a variadic flag (always false -- this compiler's
// grammar has no variadic syntax, but the field is kept so signature
// matching has somewhere to compare it).
type Signature struct {
	ReturnType *types.Type
	Parameters []*types.Type
	IsVariadic bool
}

// Matches reports whether two signatures are interchangeable: type-equal
// return types, equal parameter counts with type-equal parameters
// pairwise, and equal variadic flags.
func (s Signature) Matches(other Signature) bool {
	if s.IsVariadic != other.IsVariadic {
		return false
	}
	if !types.Equal(s.ReturnType, other.ReturnType) {
		return false
	}
	if len(s.Parameters) != len(other.Parameters) {
		return false
	}
	for i, p := range s.Parameters {
		if !types.Equal(p, other.Parameters[i]) {
			return false
		}
	}
	return true
}

// definitionState is a function entry's declare/define state, per spec
// §4.7's state machine: Absent --declare--> Declared, Absent --define-->
// Defined, Declared --declare(matching)--> Declared, Declared
// --define(matching)--> Defined. Any other transition is an error.
type definitionState int

const (
	declared definitionState = iota
	defined
)

// FunctionEntry is one function's descriptor as tracked by FunctionTable.
type FunctionEntry struct {
	Name      string
	Signature Signature
	state     definitionState
}

// HasDefinition reports whether Name has a body (reached via Define).
func (e FunctionEntry) HasDefinition() bool { return e.state == defined }

// SignatureMismatchError reports that a redeclaration or definition's
// signature disagrees with the name's existing entry.
type SignatureMismatchError struct {
	Name string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("function %q redeclared with a different signature", e.Name)
}

// RedefinitionError reports that Define was called on a name that already
// has a definition.
type RedefinitionError struct {
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("function %q is already defined", e.Name)
}

// FunctionTable is the module-scope collection of function descriptors,
// kept in insertion order (spec §4.4 requires this for deterministic
// assembly output) alongside a name index for O(1) lookup.
type FunctionTable struct {
	order   []string
	entries map[string]*FunctionEntry
}

// NewFunctionTable creates an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{entries: make(map[string]*FunctionEntry)}
}

// Declare registers name with sig, or -- if name already has an entry --
// succeeds only when sig matches the existing signature.
func (t *FunctionTable) Declare(name string, sig Signature) (*FunctionEntry, error) {
	if existing, ok := t.entries[name]; ok {
		if !existing.Signature.Matches(sig) {
			return nil, &SignatureMismatchError{Name: name}
		}
		return existing, nil
	}
	entry := &FunctionEntry{Name: name, Signature: sig, state: declared}
	t.entries[name] = entry
	t.order = append(t.order, name)
	return entry, nil
}

// Define registers name as defined with sig. If name has no entry yet, one
// is created directly in the Defined state. If it does, sig must match and
// the entry must not already be defined.
func (t *FunctionTable) Define(name string, sig Signature) (*FunctionEntry, error) {
	existing, ok := t.entries[name]
	if !ok {
		entry := &FunctionEntry{Name: name, Signature: sig, state: defined}
		t.entries[name] = entry
		t.order = append(t.order, name)
		return entry, nil
	}
	if !existing.Signature.Matches(sig) {
		return nil, &SignatureMismatchError{Name: name}
	}
	if existing.HasDefinition() {
		return nil, &RedefinitionError{Name: name}
	}
	existing.state = defined
	return existing, nil
}

// Lookup returns name's entry, if any.
func (t *FunctionTable) Lookup(name string) (*FunctionEntry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Entries returns every entry in insertion order.
func (t *FunctionTable) Entries() []*FunctionEntry {
	out := make([]*FunctionEntry, len(t.order))
	for i, name := range t.order {
		out[i] = t.entries[name]
	}
	return out
}
