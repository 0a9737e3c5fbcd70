// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import (
	"gate.computer/regalloc/internal/gen/debug"
	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// rewrite substitutes every allocatable temporary of this bank with its
// assigned physical register, then drops any move whose two arguments
// became identical (spec §4.5). Called only when colorize succeeded.
func (a *allocator) rewrite(p *lir.Program) {
	for bi := range p.Blocks {
		block := &p.Blocks[bi]
		for ii := range block.Insts {
			inst := &block.Insts[ii]
			inst.ForEachTmpFast(func(slot int, t lir.Tmp) {
				if t.Bank() != a.bank || t.IsPrecolored() {
					return
				}
				id := a.findAlias(a.g.idOf(t))
				a.checkInvariant(a.color[id] >= 0, "rewrite found an uncolored temporary")
				inst.ReplaceTmp(slot, lir.Precolor(a.bank, reg.R(a.color[id])))
			})
		}

		block.RemoveInstsIf(func(inst *lir.Inst) bool {
			def, use, bank, ok := inst.IsCoalescableMove()
			return ok && bank == a.bank && def.Equal(use)
		})
	}
}

// spillSlotSize is the reference's unconditional slot width; spec §9
// notes a target-aware implementation may narrow GP slots, but nothing
// in this module's target abstraction currently distinguishes that.
const spillSlotSize = 8

// insertSpills lowers every spilled temporary to a stack slot, per spec
// §4.6: a direct memory operand where the instruction admits one and
// the role is a pure Use or pure Def, otherwise a fresh temporary filled
// before a use and/or spilled after a def. It returns the set of fresh
// temporaries it minted, so the next round's allocator can mark them
// ineligible for further spilling.
func (a *allocator) insertSpills(p *lir.Program) map[int32]bool {
	slots := make(map[int32]*lir.StackSlot)
	for id := a.g.k; id < a.g.n; id++ {
		if a.spilled[id] {
			slots[id] = p.NewStackSlot(spillSlotSize, a.bank)
		}
	}

	fresh := make(map[int32]bool)

	for bi := range p.Blocks {
		block := &p.Blocks[bi]
		ins := lir.NewInsertionSet(block)

		for ii := range block.Insts {
			inst := &block.Insts[ii]

			for slot := range inst.Args {
				arg := &inst.Args[slot]
				if arg.Kind != lir.ArgTmp || arg.Tmp.Bank() != a.bank || arg.Tmp.IsPrecolored() {
					continue
				}
				id := a.findAlias(a.g.idOf(arg.Tmp))
				stackSlot, ok := slots[id]
				if !ok {
					continue
				}

				role := arg.Role
				if inst.AdmitsStack(slot) && !role.IsAddr() && (role == lir.Use || role == lir.Def) {
					debug.Printf("regalloc: spill %s directly onto stack operand", a.g.tmpOf(id))
					inst.ReplaceWithStack(slot, stackSlot)
					continue
				}

				debug.Printf("regalloc: spill %s via fresh fill/spill temporary", a.g.tmpOf(id))
				t := p.NewTmp(a.bank)
				fresh[a.g.idOf(t)] = true
				inst.ReplaceTmp(slot, t)

				if role.IsUse() {
					ins.InsertBefore(ii, fillMove(a.bank, t, stackSlot))
				}
				if role.IsDef() {
					ins.InsertBefore(ii+1, spillMove(a.bank, stackSlot, t))
				}
			}
		}

		ins.Execute()
	}

	return fresh
}

func moveOpcode(bank wa.Bank) lir.Opcode {
	if bank == wa.FP {
		return lir.OpMoveFP
	}
	return lir.OpMoveGP
}

// fillMove loads slot into the fresh temporary dst, immediately before
// the instruction that needs the value in a register.
func fillMove(bank wa.Bank, dst lir.Tmp, slot *lir.StackSlot) lir.Inst {
	return lir.Inst{
		Op: moveOpcode(bank),
		Args: []lir.Arg{
			{Kind: lir.ArgTmp, Tmp: dst, Role: lir.Def},
			{Kind: lir.ArgStack, Slot: slot, Role: lir.Use},
		},
	}
}

// spillMove stores the fresh temporary src into slot, immediately after
// the instruction that just defined it.
func spillMove(bank wa.Bank, slot *lir.StackSlot, src lir.Tmp) lir.Inst {
	return lir.Inst{
		Op: moveOpcode(bank),
		Args: []lir.Arg{
			{Kind: lir.ArgStack, Slot: slot, Role: lir.Def},
			{Kind: lir.ArgTmp, Tmp: src, Role: lir.Use},
		},
	}
}
