// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hir

import "sort"

// InsertionSet batches value insertions into a block so that the block
// can be walked by stable index while deciding what to insert, and the
// renumbering happens exactly once in Execute. Constant motion uses
// this to insert a materialization just before a value's first user
// without disturbing the indices of values it hasn't visited yet.
type InsertionSet struct {
	block   *Block
	pending []pendingInsert
}

type pendingInsert struct {
	before int
	order  int
	value  *Value
}

func NewInsertionSet(b *Block) *InsertionSet {
	return &InsertionSet{block: b}
}

// InsertBefore schedules v to be inserted immediately before the value
// currently at index, index referring to the block's original
// numbering. Multiple insertions at the same index preserve the order
// in which InsertBefore was called.
func (s *InsertionSet) InsertBefore(index int, v *Value) {
	s.pending = append(s.pending, pendingInsert{before: index, order: len(s.pending), value: v})
}

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

	out := make([]*Value, 0, len(s.block.Values)+len(s.pending))
	pi := 0
	for idx := range s.block.Values {
		for pi < len(s.pending) && s.pending[pi].before == idx {
			out = append(out, s.pending[pi].value)
			pi++
		}
		out = append(out, s.block.Values[idx])
	}
	for pi < len(s.pending) {
		out = append(out, s.pending[pi].value)
		pi++
	}

	s.block.Values = out
	s.pending = s.pending[:0]
}
