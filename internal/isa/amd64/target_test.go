// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (amd64 || forceamd64) && !forcearm64

package amd64

import (
	"testing"

	"gate.computer/regalloc/internal/isa"
	"gate.computer/regalloc/wa"
)

var _ isa.Target = Target{}

func TestRegistersDistinct(t *testing.T) {
	for _, bank := range []wa.Bank{wa.GP, wa.FP} {
		seen := make(map[int]bool)
		list := Target{}.Registers(bank)
		if len(list) == 0 {
			t.Fatalf("bank %s has no allocatable registers", bank)
		}
		for _, r := range list {
			if seen[int(r)] {
				t.Fatalf("bank %s: register %v listed twice", bank, r)
			}
			seen[int(r)] = true
		}
	}
}
