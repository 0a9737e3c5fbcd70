// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hir is the higher-level intermediate representation the
// constant-motion pass operates on: a procedure's basic blocks of
// values, where a value's operands are pointers reseated in place as
// the pass materializes or hoists them. It sits above internal/lir in
// the pipeline and has no knowledge of physical registers.
package hir

import "gate.computer/regalloc/wa"

// Opcode identifies what a Value computes. Only the handful the
// constant-motion pass itself produces or consumes are named here;
// every other opcode is opaque to this package, defined by the host
// compiler's own instruction set (values of 100 and above are reserved
// for that purpose by convention).
type Opcode int32

const (
	// OpNop is what a materialized-away constant definition becomes.
	OpNop Opcode = iota
	// OpConst is a literal value, immediate or otherwise.
	OpConst
	// OpLoad reads a table constant from Args[0] (a pointer) plus
	// Offset bytes.
	OpLoad
	// OpClear produces the zero value of Type directly, without a
	// table entry — the bank-clear idiom for floating-point zero.
	OpClear
	// OpDataBase is the base pointer of the constant-motion pass's own
	// read-only data section, itself a constant recursively
	// materialized like any other.
	OpDataBase
	// OpPopcount computes the population count of Args[0]. Args[1], when
	// present, is the SWAR mask a software emulation sequence would need;
	// MoveConstants drops it once the target can compute population
	// count natively, since nothing downstream references it any longer.
	OpPopcount
)

// Value is one IR value: an opcode, its type, and its operands. Const
// holds the bit pattern for an OpConst value; Offset holds the byte
// displacement for an OpLoad. Both are zero and unused for every other
// opcode.
type Value struct {
	Op     Opcode
	Type   wa.Type
	Const  uint64
	Offset int
	Args   []*Value
}

// IsConstant reports whether v is a literal value.
func (v *Value) IsConstant() bool { return v.Op == OpConst }

// Block is a basic block: a value sequence in program order. Values
// earlier in the slice are defined before values later in it; a
// value's Args may point anywhere earlier in its own or an ancestor
// block, but the constant-motion pass only ever inserts within the
// block a use occurs in.
type Block struct {
	Values []*Value
}

// Proc is a whole procedure: its blocks, plus the read-only data
// section the constant-motion pass fills in as a side effect.
type Proc struct {
	Blocks      []*Block
	DataSection []byte
}
