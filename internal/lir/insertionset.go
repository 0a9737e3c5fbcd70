// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lir

import "sort"

// InsertionSet batches instruction insertions into a block so that the
// block can be walked by stable index while deciding what to insert,
// and the renumbering happens exactly once in Execute. This mirrors how
// spill insertion and constant motion both want to insert fill/spill or
// materialization instructions while iterating a block they must not
// mutate mid-walk.
type InsertionSet struct {
	block   *Block
	pending []pendingInsert
}

type pendingInsert struct {
	before int
	order  int
	inst   Inst
}

func NewInsertionSet(b *Block) *InsertionSet {
	return &InsertionSet{block: b}
}

// InsertBefore schedules inst to be inserted immediately before the
// instruction currently at index. Index refers to the block's original
// numbering; multiple insertions at the same index preserve the order
// in which InsertBefore was called.
func (s *InsertionSet) InsertBefore(index int, inst Inst) {
	s.pending = append(s.pending, pendingInsert{before: index, order: len(s.pending), inst: inst})
}

// Len reports how many insertions are pending.
func (s *InsertionSet) Len() int { return len(s.pending) }

// Execute applies every pending insertion to the block in one pass and
// clears the pending list.
func (s *InsertionSet) Execute() {
	if len(s.pending) == 0 {
		return
	}

	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].before != s.pending[j].before {
			return s.pending[i].before < s.pending[j].before
		}
		return s.pending[i].order < s.pending[j].order
	})

	out := make([]Inst, 0, len(s.block.Insts)+len(s.pending))
	pi := 0
	for idx := range s.block.Insts {
		for pi < len(s.pending) && s.pending[pi].before == idx {
			out = append(out, s.pending[pi].inst)
			pi++
		}
		out = append(out, s.block.Insts[idx])
	}
	for pi < len(s.pending) {
		out = append(out, s.pending[pi].inst)
		pi++
	}

	s.block.Insts = out
	s.pending = s.pending[:0]
}
