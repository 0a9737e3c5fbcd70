// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compile

import (
	"testing"

	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/hir"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

type stubTarget struct{ gp []reg.R }

func (s stubTarget) Registers(bank wa.Bank) []reg.R {
	if bank == wa.GP {
		return s.gp
	}
	return nil
}

func (stubTarget) HasPopcount() bool { return false }

// TestIteratedRegisterCoalescingTrivial confirms the façade returns a
// nil error for an ordinary program and actually rewrites it: a move
// from a precolored register to an allocatable temporary, used once,
// coalesces away.
func TestIteratedRegisterCoalescingTrivial(t *testing.T) {
	p := &lir.Program{Blocks: []lir.Block{{}}}
	dst := p.NewTmp(wa.GP)
	src := lir.Precolor(wa.GP, reg.R(0))

	p.Blocks[0].Insts = []lir.Inst{
		{Op: lir.OpMoveGP, Args: []lir.Arg{
			{Kind: lir.ArgTmp, Tmp: dst, Role: lir.Def},
			{Kind: lir.ArgTmp, Tmp: src, Role: lir.Use},
		}},
		{Op: 1, Args: []lir.Arg{{Kind: lir.ArgTmp, Tmp: dst, Role: lir.Use}}},
	}

	target := stubTarget{gp: []reg.R{0, 1, 2}}
	if err := IteratedRegisterCoalescing(p, target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Blocks[0].Insts) != 1 {
		t.Fatalf("expected the move to coalesce away, got %d insts", len(p.Blocks[0].Insts))
	}
}

// TestMoveConstantsTrivial confirms the façade populates DataSection
// and leaves a plain int32 constant untouched.
func TestMoveConstantsTrivial(t *testing.T) {
	c := &hir.Value{Op: hir.OpConst, Type: wa.I32, Const: 7}
	use := &hir.Value{Op: hir.Opcode(100), Args: []*hir.Value{c}}
	proc := &hir.Proc{Blocks: []*hir.Block{{Values: []*hir.Value{c, use}}}}

	if err := MoveConstants(proc, stubTarget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if use.Args[0] != c {
		t.Fatal("expected an int32 constant's use to be left alone")
	}
	if len(proc.DataSection) != 0 {
		t.Fatalf("expected an empty data section, got %d bytes", len(proc.DataSection))
	}
}
