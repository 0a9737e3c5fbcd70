// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package live

import (
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// Analysis is the result of a whole-program backward liveness fixed
// point for one bank: for every block, the set of temporaries live on
// entry and on exit. It exists to seed each block's LocalCalc; nothing
// outside this package inspects it directly.
type Analysis struct {
	bank    wa.Bank
	liveIn  []*Set
	liveOut []*Set
}

// Analyze runs the fixed point to completion. Block successors come
// from lir.Block.Succs; a block with no successors has an empty
// live-out set (the host compiler is expected to have already modeled
// return-value liveness as a Use on the block's terminating
// instruction, same as any other use).
func Analyze(p *lir.Program, bank wa.Bank) *Analysis {
	n := p.NumTmps(bank)
	a := &Analysis{
		bank:    bank,
		liveIn:  make([]*Set, len(p.Blocks)),
		liveOut: make([]*Set, len(p.Blocks)),
	}
	for i := range p.Blocks {
		a.liveIn[i] = NewSet(n)
		a.liveOut[i] = NewSet(n)
	}

	for {
		changed := false
		for bi := len(p.Blocks) - 1; bi >= 0; bi-- {
			block := &p.Blocks[bi]

			out := NewSet(n)
			for _, succ := range block.Succs {
				out.UnionWith(a.liveIn[succ])
			}

			in := out.Clone()
			backwardLocal(block, bank, in)

			if !in.Equal(a.liveIn[bi]) {
				a.liveIn[bi] = in
				changed = true
			}
			if !out.Equal(a.liveOut[bi]) {
				a.liveOut[bi] = out
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return a
}

// backwardLocal mutates live in place, walking block back to front,
// exactly as LocalCalc.Execute would — it exists separately so Analyze
// can derive a block's live-in set without handing out a LocalCalc over
// an intermediate, not-yet-converged live-out guess.
func backwardLocal(block *lir.Block, bank wa.Bank, live *Set) {
	for i := len(block.Insts) - 1; i >= 0; i-- {
		stepBackward(&block.Insts[i], bank, live)
	}
}

func stepBackward(inst *lir.Inst, bank wa.Bank, live *Set) {
	inst.ForEachTmp(func(_ int, t lir.Tmp, role lir.Role) {
		if t.Bank() != bank {
			return
		}
		if role.IsDef() && !role.IsUse() {
			live.Remove(t)
		}
	})
	inst.ForEachTmp(func(_ int, t lir.Tmp, role lir.Role) {
		if t.Bank() != bank {
			return
		}
		if role.IsUse() {
			live.Add(t)
		}
	})
}

// LocalCalcFor returns the LocalCalc for block blockIndex, seeded with
// that block's converged live-out set.
func (a *Analysis) LocalCalcFor(blockIndex int, block *lir.Block) *LocalCalc {
	return &LocalCalc{
		bank:  a.bank,
		block: block,
		live:  a.liveOut[blockIndex].Clone(),
		pos:   len(block.Insts),
	}
}
