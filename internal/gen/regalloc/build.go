// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import (
	"gate.computer/regalloc/internal/gen/live"
	"gate.computer/regalloc/internal/lir"
)

// build walks every block backward, consulting a per-bank liveness
// oracle, and populates the interference graph, move lists, and the
// initial move worklist. See spec §4.1: def-def interference, the
// single def/live-out-minus-source asymmetry that makes a move
// coalescable, and plain def/live-out interference for everything else.
func (a *allocator) build(p *lir.Program, la *live.Analysis) {
	for bi := range p.Blocks {
		block := &p.Blocks[bi]
		calc := la.LocalCalcFor(bi, block)

		for i := len(block.Insts) - 1; i >= 0; i-- {
			inst := &block.Insts[i]
			a.buildInst(inst, calc.Live())
			calc.Execute(i)
		}
	}
}

func (a *allocator) buildInst(inst *lir.Inst, liveAfter *live.Set) {
	if def, use, bank, ok := inst.IsCoalescableMove(); ok && bank == a.bank {
		defID, useID := a.g.idOf(def), a.g.idOf(use)
		a.g.addMove(defID, useID)

		liveAfter.ForEach(a.bank, func(t lir.Tmp) {
			if t.Equal(use) {
				return
			}
			a.g.addEdge(defID, a.g.idOf(t))
		})
		return
	}

	// Def-def interference: every pair of temporaries this instruction
	// defines (of this bank) interferes with each other.
	var defs []int32
	inst.ForEachTmp(func(_ int, t lir.Tmp, role lir.Role) {
		if t.Bank() != a.bank || !role.IsDef() {
			return
		}
		defs = append(defs, a.g.idOf(t))
	})
	for i := range defs {
		for j := i + 1; j < len(defs); j++ {
			a.g.addEdge(defs[i], defs[j])
		}
	}

	// Every def interferes with everything live after this instruction.
	for _, d := range defs {
		liveAfter.ForEach(a.bank, func(t lir.Tmp) {
			a.g.addEdge(d, a.g.idOf(t))
		})
	}
}

// seedWorklists classifies every allocatable vertex with positive
// degree into spill, freeze, or simplify, per spec §4.2, and seeds the
// move worklist with every move recorded during build. Vertices of
// zero degree and no moves never enter a worklist at all; they're
// colored trivially in colorize.
func (a *allocator) seedWorklists() {
	a.moveWork = newWorklist(int32(len(a.g.moves)))
	for id := range a.g.moves {
		a.moveWork.push(int32(id))
	}

	for id := a.g.k; id < a.g.n; id++ {
		if a.g.degree[id] <= 0 {
			continue
		}
		switch {
		case a.g.degree[id] >= a.g.k:
			a.spill.push(id)
		case a.g.moveRelated(id):
			a.freeze.push(id)
		default:
			a.simplify.push(id)
		}
	}
}
