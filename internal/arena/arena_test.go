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
package arena

import "testing"

func TestPoolAllocReturnsStablePointers(t *testing.T) {
	p := NewPool[int](2)
	var ptrs []*int
	for i := 0; i < 10; i++ {
		ptrs = append(ptrs, p.Alloc(i))
	}
	for i, ptr := range ptrs {
		if *ptr != i {
			t.Fatalf("ptrs[%d] = %d, want %d (a later Alloc must not invalidate earlier pointers)", i, *ptr, i)
		}
	}
	if p.Len() != 10 {
		t.Errorf("Len() = %d, want 10", p.Len())
	}
}

func TestPoolAllocAcrossBlockBoundary(t *testing.T) {
	p := NewPool[int](1)
	a := p.Alloc(1)
	b := p.Alloc(2)
	if *a != 1 || *b != 2 {
		t.Fatalf("got *a=%d *b=%d, want 1, 2", *a, *b)
	}
}

func TestPoolDefaultCapacity(t *testing.T) {
	p := NewPool[int](0)
	if p.blockCap != defaultBlockCapacity {
		t.Errorf("blockCap = %d, want %d", p.blockCap, defaultBlockCapacity)
	}
}

func TestPoolReleasePanicsOnFurtherAlloc(t *testing.T) {
	p := NewPool[int](0)
	p.Alloc(1)
	p.Release()
	defer func() {
		if recover() == nil {
			t.Errorf("Alloc after Release did not panic")
		}
	}()
	p.Alloc(2)
}
