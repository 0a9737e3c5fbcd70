// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lir is the low-level program model the register allocator and
// its rewriter operate on: temporaries, instructions with role-tagged
// arguments, basic blocks, and a deferred-insertion helper. Everything
// above this layer (opcodes' actual semantics, encoding, liveness) is a
// collaborator, not a concern of this package.
package lir

import (
	"fmt"

	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/wa"
)

// Tmp is an abstract location: either precolored (identified with a
// physical register) or allocatable (identified by a dense, bank-local
// index that the allocator will assign a color to). The two banks never
// share an identity space.
type Tmp struct {
	bank       wa.Bank
	id         int32
	precolored bool
}

// Precolor returns the Tmp identifying physical register r in bank.
func Precolor(bank wa.Bank, r reg.R) Tmp {
	return Tmp{bank: bank, id: int32(r), precolored: true}
}

// NewAllocatable returns the Tmp identifying allocatable index id in
// bank. Callers outside this package obtain these from Program.NewTmp;
// the constructor is exported for tests that build programs by hand.
func NewAllocatable(bank wa.Bank, id int32) Tmp {
	return Tmp{bank: bank, id: id}
}

func (t Tmp) Bank() wa.Bank { return t.bank }

func (t Tmp) IsPrecolored() bool { return t.precolored }

// Reg returns the physical register identity of a precolored Tmp. It
// panics if t is allocatable.
func (t Tmp) Reg() reg.R {
	if !t.precolored {
		panic("lir: Reg of an allocatable Tmp")
	}
	return reg.R(t.id)
}

// Index returns the dense bank-local index of an allocatable Tmp. It
// panics if t is precolored.
func (t Tmp) Index() int32 {
	if t.precolored {
		panic("lir: Index of a precolored Tmp")
	}
	return t.id
}

func (t Tmp) Equal(u Tmp) bool {
	return t.bank == u.bank && t.id == u.id && t.precolored == u.precolored
}

func (t Tmp) String() string {
	if t.precolored {
		return fmt.Sprintf("%s:%s", t.bank, t.Reg())
	}
	return fmt.Sprintf("%s:t%d", t.bank, t.id)
}
