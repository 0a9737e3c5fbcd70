// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package live

import (
	"testing"

	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// t0 = Move t_in; Return t0 (Return's use of t0 modeled as a Use-only
// instruction with no destination).
func twoInstBlock() (*lir.Program, lir.Tmp, lir.Tmp) {
	p := &lir.Program{}
	tIn := p.NewTmp(wa.GP)
	t0 := p.NewTmp(wa.GP)

	block := lir.Block{
		Insts: []lir.Inst{
			{Op: lir.OpMoveGP, Args: []lir.Arg{
				{Kind: lir.ArgTmp, Tmp: t0, Role: lir.Def},
				{Kind: lir.ArgTmp, Tmp: tIn, Role: lir.Use},
			}},
			{Op: lir.Opcode(100), Args: []lir.Arg{
				{Kind: lir.ArgTmp, Tmp: t0, Role: lir.Use},
			}},
		},
	}
	p.Blocks = []lir.Block{block}
	return p, tIn, t0
}

func TestLocalCalcWalksBackward(t *testing.T) {
	p, tIn, t0 := twoInstBlock()
	a := Analyze(p, wa.GP)
	calc := a.LocalCalcFor(0, &p.Blocks[0])

	// Immediately after instruction 1 (the Return-like use), nothing is
	// live: there is no successor and the use itself is consumed by
	// stepping backward through it.
	if calc.Live().Contains(t0) {
		t.Fatal("t0 should not be live after the block's last instruction")
	}

	calc.Execute(1)
	if !calc.Live().Contains(t0) {
		t.Fatal("t0 should be live before the Use instruction")
	}

	calc.Execute(0)
	if calc.Live().Contains(t0) {
		t.Fatal("t0 should be dead before its own definition")
	}
	if !calc.Live().Contains(tIn) {
		t.Fatal("tIn should be live before the move that uses it")
	}
}

func TestAnalyzePropagatesAcrossSuccessors(t *testing.T) {
	p := &lir.Program{}
	t0 := p.NewTmp(wa.GP)

	p.Blocks = []lir.Block{
		{
			Insts: []lir.Inst{
				{Op: lir.Opcode(1), Args: []lir.Arg{{Kind: lir.ArgTmp, Tmp: t0, Role: lir.Def}}},
			},
			Succs: []int{1},
		},
		{
			Insts: []lir.Inst{
				{Op: lir.Opcode(2), Args: []lir.Arg{{Kind: lir.ArgTmp, Tmp: t0, Role: lir.Use}}},
			},
		},
	}

	a := Analyze(p, wa.GP)
	if !a.liveOut[0].Contains(t0) {
		t.Fatal("t0 should be live out of block 0, since block 1 uses it")
	}
	if a.liveOut[1].Contains(t0) {
		t.Fatal("t0 should not be live out of the exit block")
	}
}
