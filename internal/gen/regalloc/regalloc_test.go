// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import (
	"testing"

	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// opUse is any non-move opcode; its identity doesn't matter to the
// allocator beyond not colliding with OpMoveGP/OpMoveFP.
const opUse lir.Opcode = 1

// fakeTarget gives each test full control over K, the pressure point
// every scenario below is built around.
type fakeTarget struct {
	gp []reg.R
}

func (t fakeTarget) Registers(bank wa.Bank) []reg.R {
	if bank == wa.FP {
		return nil
	}
	return t.gp
}

func (fakeTarget) HasPopcount() bool { return true }

func regs(n int) fakeTarget {
	rs := make([]reg.R, n)
	for i := range rs {
		rs[i] = reg.R(i)
	}
	return fakeTarget{gp: rs}
}

// gappedRegs builds a target whose register numbers don't start at 0
// and aren't contiguous with the dense id space, the way amd64's GP
// bank occupies registers 5-13 (internal/isa/reglayout/amd64.go):
// first and count fully determine it, with every other register
// number left out of the priority list entirely.
func gappedRegs(first, count int) fakeTarget {
	rs := make([]reg.R, count)
	for i := range rs {
		rs[i] = reg.R(first + i)
	}
	return fakeTarget{gp: rs}
}

func defInst(t lir.Tmp) lir.Inst {
	return lir.Inst{Op: opUse, Args: []lir.Arg{{Kind: lir.ArgTmp, Tmp: t, Role: lir.Def}}}
}

func useInst(ts ...lir.Tmp) lir.Inst {
	inst := lir.Inst{Op: opUse}
	for _, t := range ts {
		inst.Args = append(inst.Args, lir.Arg{Kind: lir.ArgTmp, Tmp: t, Role: lir.Use})
	}
	return inst
}

func moveInst(dst, src lir.Tmp) lir.Inst {
	return lir.Inst{Op: lir.OpMoveGP, Args: []lir.Arg{
		{Kind: lir.ArgTmp, Tmp: dst, Role: lir.Def},
		{Kind: lir.ArgTmp, Tmp: src, Role: lir.Use},
	}}
}

// TestTrivialCoalesce is scenario S1: a move whose destination is
// never simultaneously live with anything its source isn't already
// live with gets coalesced away entirely.
func TestTrivialCoalesce(t *testing.T) {
	p := &lir.Program{}
	p0 := lir.Precolor(wa.GP, reg.R(0))
	t0 := p.NewTmp(wa.GP)

	p.Blocks = []lir.Block{{Insts: []lir.Inst{
		moveInst(t0, p0),
		useInst(t0),
	}}}

	target := regs(1)
	if err := Allocate(p, target); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	block := p.Blocks[0]
	if len(block.Insts) != 1 {
		t.Fatalf("expected the move to be coalesced away, got %d insts", len(block.Insts))
	}
	arg := block.Insts[0].Args[0]
	if !arg.Tmp.IsPrecolored() || arg.Tmp.Reg() != reg.R(0) {
		t.Fatalf("expected remaining use to be bound to r0, got %v", arg.Tmp)
	}
}

// TestCoalesceBlockedByInterference is scenario S2: a move whose
// source is redefined while its destination is still needed forces a
// real interference edge between them, so the move is frozen rather
// than coalesced and survives rewriting with two distinct colors.
func TestCoalesceBlockedByInterference(t *testing.T) {
	p := &lir.Program{}
	t0 := p.NewTmp(wa.GP)
	t1 := p.NewTmp(wa.GP)

	p.Blocks = []lir.Block{{Insts: []lir.Inst{
		moveInst(t1, t0), // t1 = t0
		defInst(t0),      // t0 redefined while t1 is still needed
		useInst(t0, t1),
	}}}

	target := regs(2)
	if err := Allocate(p, target); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	block := p.Blocks[0]
	if len(block.Insts) != 3 {
		t.Fatalf("expected the move to survive (blocked by interference), got %d insts", len(block.Insts))
	}
	move := block.Insts[0]
	dst, src := move.Args[0].Tmp, move.Args[1].Tmp
	if dst.Reg() == src.Reg() {
		t.Fatalf("expected distinct colors, both got r%d", dst.Reg())
	}
}

// TestCoalesceCascade is scenario S3: a chain of moves with no other
// interference collapses into a single color, Briggs combine cascading
// through every link.
func TestCoalesceCascade(t *testing.T) {
	p := &lir.Program{}
	const n = 5
	tmps := make([]lir.Tmp, n)
	for i := range tmps {
		tmps[i] = p.NewTmp(wa.GP)
	}

	var insts []lir.Inst
	for i := 1; i < n; i++ {
		insts = append(insts, moveInst(tmps[i], tmps[i-1]))
	}
	insts = append(insts, useInst(tmps[n-1]))
	p.Blocks = []lir.Block{{Insts: insts}}

	target := regs(3)
	if err := Allocate(p, target); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	block := p.Blocks[0]
	if len(block.Insts) != 1 {
		t.Fatalf("expected the whole chain to coalesce away, got %d insts", len(block.Insts))
	}
	if len(p.Slots) != 0 {
		t.Fatalf("expected no spills, got %d", len(p.Slots))
	}
}

// TestSpillAndRestart is scenario S4: three temporaries mutually live
// across a single point exceed two registers. The first round spills
// one of them; because every def/use site admits a direct stack
// operand, the second round colors the remaining graph without it.
func TestSpillAndRestart(t *testing.T) {
	p := &lir.Program{}
	t0 := p.NewTmp(wa.GP)
	t1 := p.NewTmp(wa.GP)
	t2 := p.NewTmp(wa.GP)

	insts := []lir.Inst{
		defInst(t0),
		defInst(t1),
		defInst(t2),
		useInst(t0),
		useInst(t1),
		useInst(t2),
	}
	for i := range insts {
		insts[i].SetAdmitsStack(0)
	}
	p.Blocks = []lir.Block{{Insts: insts}}

	target := regs(2)
	if err := Allocate(p, target); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(p.Slots) != 1 {
		t.Fatalf("expected exactly one spill slot, got %d", len(p.Slots))
	}
}

// TestGappedRegisterNumbering coalesces a move directly onto the
// highest-numbered register of a target whose allocatable range, like
// amd64's GP bank (internal/isa/reglayout/amd64.go), doesn't start at
// 0: register numbers 5-13, k=9. A dense id built from the raw
// register number rather than its priority-list position would put
// this precolored vertex's id (13) past the graph's vertex count,
// indexing every per-vertex table out of bounds.
func TestGappedRegisterNumbering(t *testing.T) {
	p := &lir.Program{}
	p13 := lir.Precolor(wa.GP, reg.R(13))
	t0 := p.NewTmp(wa.GP)

	p.Blocks = []lir.Block{{Insts: []lir.Inst{
		moveInst(t0, p13),
		useInst(t0),
	}}}

	target := gappedRegs(5, 9)
	if err := Allocate(p, target); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	block := p.Blocks[0]
	if len(block.Insts) != 1 {
		t.Fatalf("expected the move to be coalesced away, got %d insts", len(block.Insts))
	}
	arg := block.Insts[0].Args[0]
	if !arg.Tmp.IsPrecolored() || arg.Tmp.Reg() != reg.R(13) {
		t.Fatalf("expected remaining use to be bound to r13, got %v", arg.Tmp)
	}
}

// TestGappedRegisterNoCollision interferes an allocatable temporary
// with a precolored register chosen so that, under a raw-register-
// number id scheme, the two would land on the identical dense id
// (register 5 is this target's top priority register, and also the
// 4th allocatable temporary's id under id = k + index with k=2). A
// dense id collision would drop the interference edge entirely and
// let the allocatable temporary default to the same register the
// precolored one already holds.
func TestGappedRegisterNoCollision(t *testing.T) {
	p := &lir.Program{}
	var t3 lir.Tmp
	for i := 0; i < 4; i++ {
		t3 = p.NewTmp(wa.GP)
	}
	p5 := lir.Precolor(wa.GP, reg.R(5))

	p.Blocks = []lir.Block{{Insts: []lir.Inst{
		defInst(t3),
		defInst(p5),
		useInst(t3, p5),
	}}}

	target := gappedRegs(5, 2)
	if err := Allocate(p, target); err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	got := p.Blocks[0].Insts[0].Args[0].Tmp
	if !got.IsPrecolored() || got.Reg() == reg.R(5) {
		t.Fatalf("expected the temporary interfering with r5 to land elsewhere, got %v", got)
	}
}

// TestHighestDegree exercises the selectSpill tie-break helper
// directly, independent of the rest of the main loop.
func TestHighestDegree(t *testing.T) {
	degree := []int32{3, 1, 4, 1, 5, 9}
	ids := []int32{0, 1, 2, 3, 4, 5}

	if got := highestDegree(ids, degree, nil); got != 5 {
		t.Fatalf("highestDegree = %d, want 5", got)
	}
	if got := highestDegree(ids, degree, func(id int32) bool { return id != 5 }); got != 4 {
		t.Fatalf("highestDegree with id 5 excluded = %d, want 4", got)
	}
	if got := highestDegree(nil, degree, nil); got != -1 {
		t.Fatalf("highestDegree of empty set = %d, want -1", got)
	}
}
