// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package isa declares the target-machine abstraction that the register
// allocator and constant-motion pass program against, so the
// graph-coloring core stays target-agnostic. Each supported architecture
// provides exactly one implementation, selected by build tag.
package isa

import (
	"gate.computer/regalloc/internal/gen/reg"
	"gate.computer/regalloc/wa"
)

// Target exposes everything the allocator and constant-motion pass need
// to know about a specific machine.
type Target interface {
	// Registers returns the priority-ordered list of allocatable physical
	// registers for a bank. Registers earlier in the list are preferred
	// when coloring; this mirrors the source's per-bank priority sequence.
	Registers(bank wa.Bank) []reg.R

	// HasPopcount reports whether the target can materialize a population
	// count natively. The constant-motion pass consults it to decide
	// whether a popcount value's mask operand is dropped before motion
	// runs.
	HasPopcount() bool
}
