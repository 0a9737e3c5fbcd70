// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hir

import "testing"

func TestInsertionSetOrdering(t *testing.T) {
	b := &Block{Values: []*Value{{Op: Opcode(0)}, {Op: Opcode(1)}, {Op: Opcode(2)}}}

	s := NewInsertionSet(b)
	s.InsertBefore(1, &Value{Op: Opcode(10)})
	s.InsertBefore(1, &Value{Op: Opcode(11)})
	s.InsertBefore(0, &Value{Op: Opcode(12)})
	s.Execute()

	want := []Opcode{12, 0, 10, 11, 1, 2}
	if len(b.Values) != len(want) {
		t.Fatalf("got %d values, want %d", len(b.Values), len(want))
	}
	for i, op := range want {
		if b.Values[i].Op != op {
			t.Fatalf("value %d: got op %d, want %d", i, b.Values[i].Op, op)
		}
	}
}

func TestInsertionSetEmpty(t *testing.T) {
	b := &Block{Values: []*Value{{Op: Opcode(0)}}}
	s := NewInsertionSet(b)
	s.Execute()
	if len(b.Values) != 1 {
		t.Fatal("Execute with no pending insertions mutated the block")
	}
}
