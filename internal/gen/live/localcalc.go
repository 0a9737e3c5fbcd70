// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package live

import (
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// LocalCalc recomputes, one instruction at a time, the set of
// temporaries of one bank live immediately after a given program
// point, walking a single block in reverse. The interference builder
// reads Live() before calling Execute on the same index, then calls
// Execute to step the calculator past that instruction.
type LocalCalc struct {
	bank  wa.Bank
	block *lir.Block
	live  *Set
	pos   int
}

// Live returns the set of temporaries live immediately before the last
// instruction passed to Execute (or, if Execute has not been called
// yet, live on exit from the block).
func (c *LocalCalc) Live() *Set {
	return c.live
}

// Execute steps the calculator past instruction i, updating Live() to
// reflect liveness immediately before i (equivalently, immediately
// after i-1). Callers must invoke it for strictly decreasing i starting
// at len(block.Insts)-1.
func (c *LocalCalc) Execute(i int) {
	if i >= c.pos {
		panic("live: LocalCalc.Execute called out of reverse order")
	}
	c.pos = i
	stepBackward(&c.block.Insts[i], c.bank, c.live)
}
