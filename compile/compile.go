// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile exposes the two independent passes as ordinary
// functions returning ordinary errors: IteratedRegisterCoalescing
// allocates physical registers for a low-level program, and
// MoveConstants hoists a higher-level procedure's large and
// floating-point constants into a shared read-only data section.
// Internally both panic on invariant violations (non-convergence is
// already returned as an ordinary error); these entry points are where
// that convention ends.
package compile

import (
	"gate.computer/regalloc/internal/errorpanic"
	"gate.computer/regalloc/internal/gen/datagen"
	"gate.computer/regalloc/internal/gen/regalloc"
	"gate.computer/regalloc/internal/hir"
	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/internal/lir"
)

// IteratedRegisterCoalescing allocates physical registers for every
// temporary in p, rewriting moves, operands, and spill slots in place.
// It returns a *errors.NonConvergenceError if a bank fails to settle
// within the allocator's restart budget, or a *errors.InvariantError if
// an internal invariant is violated; both are ordinary errors, not
// panics, by the time they reach the caller.
func IteratedRegisterCoalescing(p *lir.Program, target isa.Target) (err error) {
	defer func() {
		if x := recover(); x != nil {
			err = errorpanic.Handle(x)
		}
	}()
	return regalloc.Allocate(p, target)
}

// MoveConstants hoists proc's large and floating-point constants into
// proc.DataSection, deduplicating identical constants within a block
// and across the whole data section. target gates population-count
// mask pruning (see datagen.MoveConstants); it otherwise does not
// influence motion, which is bank- and size-driven only.
func MoveConstants(proc *hir.Proc, target isa.Target) (err error) {
	defer func() {
		if x := recover(); x != nil {
			err = errorpanic.Handle(x)
		}
	}()
	datagen.MoveConstants(proc, target)
	return nil
}
