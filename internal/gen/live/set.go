// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package live is the liveness oracle the allocator's interference
// builder consults: a per-bank backward dataflow over a program's
// blocks, exposed through a LocalCalc that steps one instruction at a
// time in reverse program order, matching the contract the interference
// builder is written against.
package live

import (
	"math/bits"

	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

func regFromBit(i int) reg.R { return reg.R(i) }

// Set is a dense bitset of temporaries belonging to one bank:
// allocatable temporaries index directly into a bit vector, and
// precolored registers (few and fixed) index into a single word.
type Set struct {
	alloc []uint64
	pre   uint64
}

func NewSet(numTmps int32) *Set {
	return &Set{alloc: make([]uint64, (numTmps+63)/64)}
}

func (s *Set) Add(t lir.Tmp) {
	if t.IsPrecolored() {
		s.pre |= 1 << uint(t.Reg())
		return
	}
	idx := t.Index()
	s.alloc[idx/64] |= 1 << uint(idx%64)
}

func (s *Set) Remove(t lir.Tmp) {
	if t.IsPrecolored() {
		s.pre &^= 1 << uint(t.Reg())
		return
	}
	idx := t.Index()
	s.alloc[idx/64] &^= 1 << uint(idx%64)
}

func (s *Set) Contains(t lir.Tmp) bool {
	if t.IsPrecolored() {
		return s.pre&(1<<uint(t.Reg())) != 0
	}
	idx := t.Index()
	return s.alloc[idx/64]&(1<<uint(idx%64)) != 0
}

func (s *Set) Clone() *Set {
	c := &Set{alloc: make([]uint64, len(s.alloc)), pre: s.pre}
	copy(c.alloc, s.alloc)
	return c
}

// UnionWith merges o into s and reports whether s changed.
func (s *Set) UnionWith(o *Set) (changed bool) {
	if o.pre&^s.pre != 0 {
		s.pre |= o.pre
		changed = true
	}
	for i, w := range o.alloc {
		if w&^s.alloc[i] != 0 {
			s.alloc[i] |= w
			changed = true
		}
	}
	return
}

func (s *Set) Equal(o *Set) bool {
	if s.pre != o.pre {
		return false
	}
	for i, w := range s.alloc {
		if w != o.alloc[i] {
			return false
		}
	}
	return true
}

// ForEach visits every temporary currently in the set — precolored
// registers first, then allocatable temporaries in index order — tagged
// with bank, since a Set by itself does not know which bank it belongs
// to.
func (s *Set) ForEach(bank wa.Bank, f func(lir.Tmp)) {
	for w := s.pre; w != 0; {
		i := bits.TrailingZeros64(w)
		f(lir.Precolor(bank, regFromBit(i)))
		w &^= 1 << uint(i)
	}
	for wi, w := range s.alloc {
		for w != 0 {
			i := bits.TrailingZeros64(w)
			f(lir.NewAllocatable(bank, int32(wi*64+i)))
			w &^= 1 << uint(i)
		}
	}
}
