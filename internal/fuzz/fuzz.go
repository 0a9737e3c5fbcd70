// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fuzz is the go-fuzz entry point: it turns an arbitrary byte
// string into a lir.Program and a hir.Proc and runs both compile passes
// over them, the way the original fuzzer turned one into a wag module
// and disassembled whatever it produced.
package fuzz

import (
	"math"

	"gate.computer/regalloc/compile"
	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/hir"
	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

const numFakeRegs = 4

// fakeTarget is a minimal isa.Target, independent of any build-tagged
// architecture package, so this fuzzer runs on every platform.
type fakeTarget struct {
	popcount bool
}

func (fakeTarget) Registers(wa.Bank) []reg.R {
	regs := make([]reg.R, numFakeRegs)
	for i := range regs {
		regs[i] = reg.R(i)
	}
	return regs
}

func (t fakeTarget) HasPopcount() bool { return t.popcount }

var _ isa.Target = fakeTarget{}

func Fuzz(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	c := &cursor{data: data}
	popcount := c.intn(2) == 0

	p := buildProgram(c)
	compile.IteratedRegisterCoalescing(p, fakeTarget{popcount: popcount})

	proc := buildProc(c)
	compile.MoveConstants(proc, fakeTarget{popcount: popcount})

	return 1
}

// cursor turns a byte string into a stream of small bounded integers,
// the way a fuzzer's input drives decisions rather than values.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) next() byte {
	if c.pos >= len(c.data) {
		return 0
	}
	b := c.data[c.pos]
	c.pos++
	return b
}

// intn returns a value in [0, n), or 0 if n is not positive.
func (c *cursor) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.next()) % n
}

func (c *cursor) bank() wa.Bank {
	if c.intn(2) == 0 {
		return wa.GP
	}
	return wa.FP
}

const (
	maxBlocks = 4
	maxInsts  = 6
	maxTmps   = 6
)

// buildProgram constructs a small lir.Program whose shape is entirely
// driven by c: block count, instruction shapes, and whether a given
// temporary is precolored or allocatable all come from the input.
func buildProgram(c *cursor) *lir.Program {
	p := &lir.Program{Blocks: make([]lir.Block, 1+c.intn(maxBlocks))}

	tmps := make([]lir.Tmp, 0, maxTmps)
	newTmp := func(bank wa.Bank) lir.Tmp {
		if c.intn(3) == 0 {
			return lir.Precolor(bank, reg.R(c.intn(numFakeRegs)))
		}
		return p.NewTmp(bank)
	}
	for i := 0; i < 1+c.intn(maxTmps); i++ {
		tmps = append(tmps, newTmp(c.bank()))
	}
	pick := func(bank wa.Bank) (lir.Tmp, bool) {
		start := c.intn(len(tmps))
		for i := 0; i < len(tmps); i++ {
			if t := tmps[(start+i)%len(tmps)]; t.Bank() == bank {
				return t, true
			}
		}
		return lir.Tmp{}, false
	}

	for bi := range p.Blocks {
		b := &p.Blocks[bi]
		n := 1 + c.intn(maxInsts)
		b.Insts = make([]lir.Inst, 0, n)
		for ii := 0; ii < n; ii++ {
			bank := c.bank()
			dst, ok1 := pick(bank)
			src, ok2 := pick(bank)
			if !ok1 || !ok2 {
				continue
			}
			var inst lir.Inst
			if c.intn(2) == 0 && !dst.Equal(src) {
				op := lir.OpMoveGP
				if bank == wa.FP {
					op = lir.OpMoveFP
				}
				inst = lir.Inst{Op: op, Args: []lir.Arg{
					{Kind: lir.ArgTmp, Tmp: dst, Role: lir.Def},
					{Kind: lir.ArgTmp, Tmp: src, Role: lir.Use},
				}}
			} else {
				inst = lir.Inst{Op: lir.Opcode(ii), Args: []lir.Arg{
					{Kind: lir.ArgTmp, Tmp: dst, Role: lir.UseDef},
					{Kind: lir.ArgTmp, Tmp: src, Role: lir.Use},
				}}
			}
			if c.intn(2) == 0 {
				inst.SetAdmitsStack(0)
			}
			b.Insts = append(b.Insts, inst)
		}
		if bi+1 < len(p.Blocks) {
			b.Succs = []int{bi + 1}
		}
	}

	return p
}

const (
	opUse    hir.Opcode = 100
	maxConst            = 5
)

// buildProc constructs a small hir.Proc whose constants repeat with a
// frequency driven by c, so the fuzzer exercises motion's deduplication
// as often as it exercises a single first use.
func buildProc(c *cursor) *hir.Proc {
	proc := &hir.Proc{Blocks: []*hir.Block{{}}}
	block := proc.Blocks[0]

	n := 1 + c.intn(maxConst)
	for i := 0; i < n; i++ {
		v := randomConst(c)
		if v.Type.Bank() == wa.GP && c.intn(3) == 0 {
			mask := randomConst(c)
			popcount := &hir.Value{Op: hir.OpPopcount, Type: v.Type, Args: []*hir.Value{v, mask}}
			block.Values = append(block.Values, v, mask, popcount, &hir.Value{Op: opUse, Args: []*hir.Value{popcount}})
			continue
		}
		block.Values = append(block.Values, v, &hir.Value{Op: opUse, Args: []*hir.Value{v}})
	}

	return proc
}

func randomConst(c *cursor) *hir.Value {
	switch c.intn(4) {
	case 0:
		return &hir.Value{Op: hir.OpConst, Type: wa.I32, Const: uint64(c.next())}
	case 1:
		return &hir.Value{Op: hir.OpConst, Type: wa.I64, Const: uint64(math.MaxInt32) + uint64(c.next()) + 1}
	case 2:
		bits := math.Float64bits(0)
		return &hir.Value{Op: hir.OpConst, Type: wa.F64, Const: bits}
	default:
		bits := math.Float64bits(3.0 + float64(c.next())/256)
		return &hir.Value{Op: hir.OpConst, Type: wa.F64, Const: bits}
	}
}
