// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datagen

import (
	"math"

	"gate.computer/regalloc/internal/hir"
	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/wa"
)

// MoveConstants mutates proc so that every constant needing motion is
// replaced, at each of its uses, with a per-block materialization —
// a table load for a non-zero floating-point constant, a bank-clear
// for floating-point zero, or a plain rematerialization of the literal
// otherwise — and populates proc.DataSection as a side effect. The
// original constant-defining values become no-ops.
//
// target gates one further decision: an OpPopcount value's SWAR mask
// operand (see hir.OpPopcount) is pruned before motion runs at all when
// target.HasPopcount is true, since a target with a native population
// count never lowers to the software sequence the mask exists for.
func MoveConstants(proc *hir.Proc, target isa.Target) {
	dropPopcountMasks(proc, target)

	t := newTable()
	var toRemove []*hir.Value

	for _, block := range proc.Blocks {
		for _, v := range block.Values {
			if !needsMotion(v) {
				continue
			}
			toRemove = append(toRemove, v)
			if k := keyOf(v); goesInTable(k) {
				t.add(k)
			}
		}
	}

	for _, block := range proc.Blocks {
		cache := make(map[key]*hir.Value)
		ins := hir.NewInsertionSet(block)

		for idx, v := range block.Values {
			for ai, child := range v.Args {
				if !needsMotion(child) {
					continue
				}
				v.Args[ai] = materialize(t, cache, ins, idx, keyOf(child))
			}
		}

		ins.Execute()
	}

	for _, v := range toRemove {
		v.Op = hir.OpNop
		v.Const = 0
		v.Args = nil
	}

	proc.DataSection = t.bytes()
}

// dropPopcountMasks discards the SWAR mask operand of every OpPopcount
// value once the target can compute population count natively. The
// mask's own definition is left in place; the ordinary motion scan
// still reduces it to a no-op if it needs motion, like every other
// such constant, but with no remaining reference to it no per-block
// rematerialization is inserted for it.
func dropPopcountMasks(proc *hir.Proc, target isa.Target) {
	if !target.HasPopcount() {
		return
	}
	for _, block := range proc.Blocks {
		for _, v := range block.Values {
			if v.Op == hir.OpPopcount && len(v.Args) > 1 {
				v.Args = v.Args[:1]
			}
		}
	}
}

// materialize returns the per-block materialization of k, inserting
// and caching a fresh one on first request. Table constants recurse
// once, to materialize (and cache, in the same map) the data
// section's base pointer.
func materialize(t *table, cache map[key]*hir.Value, ins *hir.InsertionSet, idx int, k key) *hir.Value {
	if v, ok := cache[k]; ok {
		return v
	}

	var result *hir.Value
	switch {
	case k == tableBaseKey:
		result = &hir.Value{Op: hir.OpDataBase, Type: wa.I64}

	case goesInTable(k):
		base := materialize(t, cache, ins, idx, tableBaseKey)
		result = &hir.Value{
			Op:     hir.OpLoad,
			Type:   k.typ,
			Args:   []*hir.Value{base},
			Offset: t.add(k) * wordSize,
		}

	case k.typ.Bank() == wa.FP:
		// Only positive zero reaches here unmotioned into the table.
		result = &hir.Value{Op: hir.OpClear, Type: k.typ}

	default:
		result = &hir.Value{Op: hir.OpConst, Type: k.typ, Const: k.bits}
	}

	ins.InsertBefore(idx, result)
	cache[k] = result
	return result
}

// needsMotion reports whether v is a constant that cannot be
// materialized as a plain instruction immediate: every constant except
// a 32-bit-representable integer.
func needsMotion(v *hir.Value) bool {
	if !v.IsConstant() {
		return false
	}
	if v.Type.Bank() == wa.GP {
		return !fitsInt32(v.Const, v.Type)
	}
	return true
}

func fitsInt32(bits uint64, t wa.Type) bool {
	if t == wa.I32 {
		return true
	}
	v := int64(bits)
	return v >= math.MinInt32 && v <= math.MaxInt32
}
