// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lir

import "testing"

func TestInsertionSetOrdering(t *testing.T) {
	b := &Block{Insts: []Inst{{Op: Opcode(0)}, {Op: Opcode(1)}, {Op: Opcode(2)}}}

	s := NewInsertionSet(b)
	s.InsertBefore(1, Inst{Op: Opcode(10)})
	s.InsertBefore(1, Inst{Op: Opcode(11)})
	s.InsertBefore(0, Inst{Op: Opcode(12)})
	s.Execute()

	want := []Opcode{12, 0, 10, 11, 1, 2}
	if len(b.Insts) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(b.Insts), len(want))
	}
	for i, op := range want {
		if b.Insts[i].Op != op {
			t.Fatalf("instruction %d: got op %d, want %d", i, b.Insts[i].Op, op)
		}
	}
}

func TestInsertionSetEmpty(t *testing.T) {
	b := &Block{Insts: []Inst{{Op: Opcode(0)}}}
	s := NewInsertionSet(b)
	s.Execute()
	if len(b.Insts) != 1 {
		t.Fatal("Execute with no pending insertions mutated the block")
	}
}
