// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lir

import (
	"testing"

	"gate.computer/regalloc/wa"
)

func TestIsCoalescableMove(t *testing.T) {
	def := NewAllocatable(wa.GP, 0)
	use := NewAllocatable(wa.GP, 1)

	i := Inst{
		Op: OpMoveGP,
		Args: []Arg{
			{Kind: ArgTmp, Tmp: def, Role: Def},
			{Kind: ArgTmp, Tmp: use, Role: Use},
		},
	}

	gotDef, gotUse, bank, ok := i.IsCoalescableMove()
	if !ok {
		t.Fatal("expected coalescable move")
	}
	if !gotDef.Equal(def) || !gotUse.Equal(use) || bank != wa.GP {
		t.Fatal("wrong endpoints or bank:", gotDef, gotUse, bank)
	}

	notMove := Inst{
		Op: Opcode(3),
		Args: []Arg{
			{Kind: ArgTmp, Tmp: def, Role: Def},
			{Kind: ArgTmp, Tmp: use, Role: Use},
		},
	}
	if _, _, _, ok := notMove.IsCoalescableMove(); ok {
		t.Fatal("non-move opcode reported as coalescable")
	}

	crossBank := Inst{
		Op: OpMoveGP,
		Args: []Arg{
			{Kind: ArgTmp, Tmp: NewAllocatable(wa.GP, 0), Role: Def},
			{Kind: ArgTmp, Tmp: NewAllocatable(wa.FP, 0), Role: Use},
		},
	}
	if _, _, _, ok := crossBank.IsCoalescableMove(); ok {
		t.Fatal("cross-bank move reported as coalescable")
	}
}

func TestForEachTmp(t *testing.T) {
	i := Inst{
		Op: Opcode(7),
		Args: []Arg{
			{Kind: ArgTmp, Tmp: NewAllocatable(wa.GP, 0), Role: Use},
			{Kind: ArgOther},
			{Kind: ArgTmp, Tmp: NewAllocatable(wa.GP, 1), Role: Def},
		},
	}

	var slots []int
	i.ForEachTmp(func(slot int, tmp Tmp, role Role) {
		slots = append(slots, slot)
	})
	if len(slots) != 2 || slots[0] != 0 || slots[1] != 2 {
		t.Fatal("unexpected visited slots:", slots)
	}
}

func TestAdmitsStack(t *testing.T) {
	var i Inst
	if i.AdmitsStack(0) {
		t.Fatal("fresh instruction should admit no stack operands")
	}
	i.SetAdmitsStack(1)
	if i.AdmitsStack(0) || !i.AdmitsStack(1) {
		t.Fatal("SetAdmitsStack affected the wrong slot")
	}
}
