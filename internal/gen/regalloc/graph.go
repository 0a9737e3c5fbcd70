// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regalloc implements iterated register coalescing: a
// Chaitin/Briggs-style graph-coloring allocator that assigns physical
// registers to a program's virtual temporaries, coalescing redundant
// moves and spilling what it cannot color, one bank at a time.
package regalloc

import (
	"math"

	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// infiniteDegree marks a precolored vertex: it never joins a worklist
// and is never a coalescing target itself, only an obstacle.
const infiniteDegree = math.MaxInt32

// graph is the interference graph for one bank. Vertices are densely
// indexed: precolored registers occupy ids [0, k), allocatable
// temporaries occupy ids [k, k+numAllocatable). This lets every
// per-vertex table (degree, adjacency, color, alias) be a plain slice
// instead of a hash map.
//
// A register's dense id is its position in the target's priority list
// (spec §9's absolute_index/tmp_for_index scheme), not its raw register
// number: the target's allocatable registers for a bank need not be a
// [0, k) range themselves (amd64 GP, for instance, occupies register
// numbers 5-13). regs and regID convert between the two.
type graph struct {
	bank wa.Bank
	k    int32 // number of physical registers in this bank
	n    int32 // total vertex count, k + numAllocatable

	regs  []reg.R    // dense id -> register, id < k
	regID [256]int32 // register -> dense id, or -1 if not allocatable in this bank

	edges  map[uint64]struct{} // membership test, keyed by packed (min<<32|max)
	adj    [][]int32           // adjacency lists; unused (nil) for precolored vertices
	degree []int32

	moveList [][]int32 // indices into moves, per vertex
	moves    []move
}

type move struct {
	a, b  int32
	state moveState
}

type moveState uint8

const (
	moveWorklist moveState = iota
	moveActive
	moveFrozen
	moveCoalesced
)

func newGraph(bank wa.Bank, target isa.Target, numAllocatable int32) *graph {
	regs := target.Registers(bank)
	k := int32(len(regs))
	n := k + numAllocatable

	g := &graph{
		bank:     bank,
		k:        k,
		n:        n,
		regs:     regs,
		edges:    make(map[uint64]struct{}),
		adj:      make([][]int32, n),
		degree:   make([]int32, n),
		moveList: make([][]int32, n),
	}
	for i := range g.regID {
		g.regID[i] = -1
	}
	for i, r := range regs {
		g.regID[r] = int32(i)
	}
	return g
}

func (g *graph) idOf(t lir.Tmp) int32 {
	if t.IsPrecolored() {
		return g.regID[t.Reg()]
	}
	return g.k + t.Index()
}

func (g *graph) tmpOf(id int32) lir.Tmp {
	if id < g.k {
		return lir.Precolor(g.bank, g.regs[id])
	}
	return lir.NewAllocatable(g.bank, id-g.k)
}

func (g *graph) isPrecolored(id int32) bool { return id < g.k }

func packEdge(a, b int32) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(uint32(a))<<32 | uint64(uint32(b))
}

func (g *graph) hasEdge(a, b int32) bool {
	_, ok := g.edges[packEdge(a, b)]
	return ok
}

// addEdge records the interference, maintaining adjacency and degree
// for the non-precolored side(s). Precolored vertices keep a fixed
// infinite degree and no adjacency list: nothing ever needs to iterate
// "the neighbors of a physical register".
func (g *graph) addEdge(a, b int32) {
	if a == b {
		return
	}
	key := packEdge(a, b)
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}

	if g.isPrecolored(a) {
		g.degree[a] = infiniteDegree
	} else {
		g.adj[a] = append(g.adj[a], b)
		g.degree[a]++
	}
	if g.isPrecolored(b) {
		g.degree[b] = infiniteDegree
	} else {
		g.adj[b] = append(g.adj[b], a)
		g.degree[b]++
	}
}

func (g *graph) addMove(a, b int32) int32 {
	id := int32(len(g.moves))
	g.moves = append(g.moves, move{a: a, b: b, state: moveWorklist})
	g.moveList[a] = append(g.moveList[a], id)
	g.moveList[b] = append(g.moveList[b], id)
	return id
}

// moveRelated reports whether v has any move still eligible for
// coalescing (on the worklist) or pending reactivation (active). Stale
// entries left behind by combine (discarded or already-coalesced moves
// that were never pruned from the list) are filtered by state, not by
// removal, since removal would cost O(n) per combine.
func (g *graph) moveRelated(id int32) bool {
	for _, m := range g.moveList[id] {
		switch g.moves[m].state {
		case moveWorklist, moveActive:
			return true
		}
	}
	return false
}

func (g *graph) otherEndpoint(m int32, id int32) int32 {
	mv := g.moves[m]
	if mv.a == id {
		return mv.b
	}
	return mv.a
}
