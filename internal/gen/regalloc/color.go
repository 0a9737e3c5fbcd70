// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

// colorize pops the select stack and assigns each vertex the first
// register in priority order not forbidden by an already-colored or
// precolored neighbor (spec §4.4). It reports whether every vertex
// colored; on failure the caller discards the color map and spill
// insertion runs instead.
func (a *allocator) colorize() (ok bool) {
	regs := a.target.Registers(a.bank)
	ok = true

	for i := len(a.selectStack) - 1; i >= 0; i-- {
		v := a.selectStack[i]

		var forbidden uint64
		for _, n := range a.g.adj[v] {
			an := a.findAlias(n)
			if a.g.isPrecolored(an) {
				forbidden |= 1 << uint(a.g.regs[an])
				continue
			}
			if c := a.color[an]; c >= 0 {
				forbidden |= 1 << uint(c)
			}
		}

		assigned := int32(-1)
		for _, r := range regs {
			if forbidden&(1<<uint(r)) == 0 {
				assigned = int32(r)
				break
			}
		}

		if assigned < 0 {
			a.spilled[v] = true
			ok = false
			continue
		}
		a.color[v] = assigned
	}

	// Vertices that never entered a worklist (zero degree, no moves)
	// never reached the select stack either; they're free to take the
	// bank's first register.
	for id := a.g.k; id < a.g.n; id++ {
		if a.findAlias(id) != id {
			continue
		}
		if a.color[id] < 0 && !a.spilled[id] && a.g.degree[id] == 0 && !a.g.moveRelated(id) {
			a.color[id] = int32(regs[0])
		}
	}

	// Coalesced vertices inherit their representative's color (or
	// spilled status) by construction.
	for id := a.g.k; id < a.g.n; id++ {
		rep := a.findAlias(id)
		if rep == id {
			continue
		}
		a.color[id] = a.color[rep]
		a.spilled[id] = a.spilled[rep]
	}

	return ok
}
