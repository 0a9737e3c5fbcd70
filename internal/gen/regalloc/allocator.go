// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import (
	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/internal/pan"
	"gate.computer/regalloc/wa"
)

// allocator holds everything one outer fixed-point iteration for one
// bank owns: the interference graph, the four temporary worklists, the
// select stack, and the alias/color/spill results the rewriter
// consumes once the main loop settles.
type allocator struct {
	bank   wa.Bank
	target isa.Target
	g      *graph

	simplify *worklist
	freeze   *worklist
	spill    *worklist
	moveWork *worklist // moves with state == moveWorklist

	selectStack []int32
	onStack     []bool

	alias []int32 // alias[id] == id means not coalesced
	color []int32 // -1 means uncolored (spilled, or not yet assigned)

	spilled []bool

	// ineligible marks temporaries minted by a previous round's spill
	// insertion: selectSpill skips them, which is how this
	// implementation resolves the reference's own FIXME about
	// re-picking an already-spilled temporary forever.
	ineligible []bool
}

func newAllocator(p *lir.Program, bank wa.Bank, target isa.Target, ineligible map[int32]bool) *allocator {
	numAllocatable := p.NumTmps(bank)
	g := newGraph(bank, target, numAllocatable)

	a := &allocator{
		bank:        bank,
		target:      target,
		g:           g,
		simplify:    newWorklist(g.n),
		freeze:      newWorklist(g.n),
		spill:       newWorklist(g.n),
		onStack:     make([]bool, g.n),
		alias:       make([]int32, g.n),
		color:       make([]int32, g.n),
		spilled:     make([]bool, g.n),
		ineligible:  make([]bool, g.n),
	}
	for i := range a.alias {
		a.alias[i] = int32(i)
		a.color[i] = -1
	}
	// A precolored vertex's color is its own physical register, fixed
	// for the allocator's whole lifetime, not the -1 "uncolored"
	// sentinel every other vertex starts with. Without this, aliasing a
	// temporary directly onto a physical register would leave the
	// representative's color at -1.
	for i := int32(0); i < g.k; i++ {
		a.color[i] = int32(g.regs[i])
	}
	for id := range ineligible {
		a.ineligible[id] = true
	}
	return a
}

func (a *allocator) degree(id int32) int32 { return a.g.degree[id] }

// findAlias follows the coalescing chain to its representative.
func (a *allocator) findAlias(id int32) int32 {
	for a.alias[id] != id {
		id = a.alias[id]
	}
	return id
}

func (a *allocator) checkInvariant(cond bool, text string) {
	if !cond {
		pan.Panic(invariantError(text))
	}
}
