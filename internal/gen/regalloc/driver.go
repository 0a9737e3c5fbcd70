// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import (
	"gate.computer/regalloc/errors"
	"gate.computer/regalloc/internal/gen/debug"
	"gate.computer/regalloc/internal/gen/live"
	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/internal/lir"
	"gate.computer/regalloc/wa"
)

// maxRestarts bounds the outer spill-restart loop per bank. Exceeding
// it is a legitimate, reportable compilation failure (spec §7
// Non-convergence), not a bug: the host compiler may fall back to a
// baseline code path for the procedure.
const maxRestarts = 64

// Allocate runs the full two-bank pipeline over p (spec §4.7): an
// opportunistic coupled first round for both banks, then an independent
// fixed-point restart loop for whichever bank, if any, failed to color
// in that round.
func Allocate(p *lir.Program, target isa.Target) error {
	gp := newAllocator(p, wa.GP, target, nil)
	gp.build(p, live.Analyze(p, wa.GP))
	gp.seedWorklists()
	gp.mainLoop()
	gpOK := gp.colorize()

	fp := newAllocator(p, wa.FP, target, nil)
	fp.build(p, live.Analyze(p, wa.FP))
	fp.seedWorklists()
	fp.mainLoop()
	fpOK := fp.colorize()

	if gpOK {
		gp.rewrite(p)
	} else {
		debug.Printf("regalloc: GP bank did not color in the coupled round, restarting")
		ineligible := gp.insertSpills(p)
		if err := runBank(p, wa.GP, target, ineligible, 1); err != nil {
			return err
		}
	}

	if fpOK {
		fp.rewrite(p)
	} else {
		debug.Printf("regalloc: FP bank did not color in the coupled round, restarting")
		ineligible := fp.insertSpills(p)
		if err := runBank(p, wa.FP, target, ineligible, 1); err != nil {
			return err
		}
	}

	return nil
}

// runBank is the independent fixed-point loop for one bank: build,
// simplify/coalesce/freeze/spill to settlement, color, and either
// rewrite or insert spills and try again, up to maxRestarts times.
func runBank(p *lir.Program, bank wa.Bank, target isa.Target, ineligible map[int32]bool, round int) error {
	for {
		a := newAllocator(p, bank, target, ineligible)
		a.build(p, live.Analyze(p, bank))
		a.seedWorklists()
		a.mainLoop()

		if a.colorize() {
			a.rewrite(p)
			return nil
		}

		if round >= maxRestarts {
			return &errors.NonConvergenceError{Bank: bank, Iterations: round}
		}

		debug.Printf("regalloc: %s bank spilled, restarting (round %d)", bank, round)
		fresh := a.insertSpills(p)
		for id := range fresh {
			ineligible[id] = true
		}
		round++
	}
}
