// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datagen implements constant motion: deduplicating a
// procedure's large constant materializations per block and laying
// non-representable floating-point constants into a shared read-only
// data section, per Source/JavaScriptCore/b3/B3MoveConstants.cpp.
package datagen

import (
	"encoding/binary"

	"gate.computer/regalloc/buffer"
	"gate.computer/regalloc/internal/hir"
	"gate.computer/regalloc/wa"
)

// wordSize is the reference's unconditional data-section slot width;
// every entry is 8 bytes regardless of the constant's own type width.
const wordSize = 8

// maxTableBytes bounds the data section to what a 32-bit signed
// load displacement can address. A table that grows past this would
// need a second addressing mode this module never emits.
const maxTableBytes = 1 << 31

// table deduplicates floating-point constants destined for the data
// section, keyed by (opcode, type, bit-pattern).
type table struct {
	data *buffer.Limited
	slot map[key]int
}

func newTable() *table {
	return &table{
		data: buffer.NewLimited(nil, maxTableBytes),
		slot: make(map[key]int),
	}
}

// add returns key's slot index, assigning and writing a fresh one if
// key hasn't been seen before.
func (t *table) add(k key) int {
	if i, ok := t.slot[k]; ok {
		return i
	}
	i := len(t.slot)
	t.slot[k] = i
	binary.LittleEndian.PutUint64(t.data.Extend(wordSize), k.bits)
	return i
}

func (t *table) bytes() []byte { return t.data.Bytes() }

// key identifies a constant for deduplication by (opcode, type,
// bit-pattern).
type key struct {
	op   hir.Opcode
	typ  wa.Type
	bits uint64
}

func keyOf(v *hir.Value) key { return key{op: v.Op, typ: v.Type, bits: v.Const} }

// tableBaseKey identifies the data section's own base pointer, which
// is materialized and cached exactly like any other constant.
var tableBaseKey = key{op: hir.OpDataBase, typ: wa.I64}

// goesInTable reports whether k belongs in the shared data section:
// every floating-point constant except the bit pattern of positive
// zero, which is materialized inline instead (see materialize).
func goesInTable(k key) bool {
	return k.typ.Bank() == wa.FP && k.bits != 0
}
