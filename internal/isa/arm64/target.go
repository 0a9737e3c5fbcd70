// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (arm64 || forcearm64) && !forceamd64

package arm64

import (
	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/internal/isa/reglayout"
	"gate.computer/regalloc/wa"
)

// Target is the arm64 isa.Target. The zero value is ready to use.
type Target struct{}

func (Target) Registers(bank wa.Bank) []reg.R {
	switch bank {
	case wa.GP:
		return gpRegs
	case wa.FP:
		return fpRegs
	default:
		panic("bad register bank")
	}
}

// HasPopcount reports true unconditionally: every arm64 core implements
// CNT over a NEON register, so a population count never needs a
// shift-and-mask fallback sequence here.
func (Target) HasPopcount() bool {
	return true
}

var (
	gpRegs = priorityRange(reglayout.AllocIntFirst, reglayout.AllocIntLast)
	fpRegs = priorityRange(reglayout.AllocFloatFirst, reglayout.AllocFloatLast)
)

func priorityRange(first, last int) []reg.R {
	list := make([]reg.R, 0, last-first+1)
	for i := first; i <= last; i++ {
		list = append(list, reg.R(i))
	}
	return list
}
