// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import "gate.computer/regalloc/internal/gen/debug"

// mainLoop drives simplify/coalesce/freeze/selectSpill in the priority
// order spec §4.3 requires, until every temporary and move worklist is
// empty.
func (a *allocator) mainLoop() {
	for {
		switch {
		case !a.simplify.empty():
			a.simplifyStep()
		case !a.moveWork.empty():
			a.coalesceStep()
		case !a.freeze.empty():
			a.freezeStep()
		case !a.spill.empty():
			a.selectSpillStep()
		default:
			return
		}
	}
}

func (a *allocator) simplifyStep() {
	v := a.simplify.pop()
	debug.Printf("regalloc: simplify %s", a.g.tmpOf(v))
	a.selectStack = append(a.selectStack, v)
	a.onStack[v] = true

	for _, n := range a.g.adj[v] {
		if !a.onStack[n] && a.findAlias(n) == n {
			a.decrementDegree(n)
		}
	}
}

// decrementDegree lowers v's degree by one and, if that drops it to
// exactly K-1 (the point it becomes colorable), reactivates its moves
// and promotes it out of spill into freeze or simplify.
func (a *allocator) decrementDegree(v int32) {
	d := a.g.degree[v]
	a.checkInvariant(d > 0, "decrementDegree on a vertex of degree 0")
	a.g.degree[v] = d - 1

	if d != a.g.k {
		return
	}

	a.enableMoves(v)
	for _, n := range a.g.adj[v] {
		if !a.onStack[n] && a.findAlias(n) == n {
			a.enableMoves(n)
		}
	}

	a.spill.remove(v)
	if a.g.moveRelated(v) {
		a.freeze.push(v)
	} else {
		a.simplify.push(v)
	}
}

// enableMoves moves every still-active move on v back onto the move
// worklist so coalesce reconsiders it now that the graph has changed.
func (a *allocator) enableMoves(v int32) {
	for _, m := range a.g.moveList[v] {
		if a.g.moves[m].state == moveActive {
			a.g.moves[m].state = moveWorklist
			a.moveWork.push(m)
		}
	}
}

func (a *allocator) coalesceStep() {
	m := a.moveWork.pop()
	mv := &a.g.moves[m]

	u, v := a.findAlias(mv.a), a.findAlias(mv.b)
	if a.g.isPrecolored(v) && !a.g.isPrecolored(u) {
		u, v = v, u
	}

	switch {
	case u == v:
		debug.Printf("regalloc: coalesce %s already unified", a.g.tmpOf(u))
		mv.state = moveCoalesced
		a.addWorkList(u)

	case a.g.isPrecolored(v) || a.g.hasEdge(u, v):
		debug.Printf("regalloc: coalesce %s/%s blocked by interference", a.g.tmpOf(u), a.g.tmpOf(v))
		mv.state = moveFrozen
		a.addWorkList(u)
		a.addWorkList(v)

	case a.safeToCoalesce(u, v):
		debug.Printf("regalloc: combine %s into %s", a.g.tmpOf(v), a.g.tmpOf(u))
		mv.state = moveCoalesced
		a.combine(u, v)
		a.addWorkList(u)

	default:
		debug.Printf("regalloc: coalesce %s/%s not yet safe, deferred", a.g.tmpOf(u), a.g.tmpOf(v))
		mv.state = moveActive
	}
}

// safeToCoalesce applies the George heuristic when u is precolored, the
// Briggs conservative rule otherwise (spec §4.3 "Coalesce").
func (a *allocator) safeToCoalesce(u, v int32) bool {
	if a.g.isPrecolored(u) {
		for _, t := range a.g.adj[v] {
			if !a.george(t, u) {
				return false
			}
		}
		return true
	}

	if len(a.g.adj[u])+len(a.g.adj[v]) < int(a.g.k) {
		return true
	}

	seen := make(map[int32]bool, len(a.g.adj[u])+len(a.g.adj[v]))
	highDegree := 0
	count := func(n int32) {
		if seen[n] {
			return
		}
		seen[n] = true
		if a.g.degree[n] >= a.g.k {
			highDegree++
		}
	}
	for _, n := range a.g.adj[u] {
		count(n)
	}
	for _, n := range a.g.adj[v] {
		count(n)
	}
	return highDegree < int(a.g.k)
}

func (a *allocator) george(t, u int32) bool {
	return a.g.hasEdge(t, u) || a.g.isPrecolored(t) || a.g.degree[t] < a.g.k || a.onStack[t]
}

// combine merges v into u: moves v's edges and move list onto u and
// retires v from the graph.
func (a *allocator) combine(u, v int32) {
	a.freeze.remove(v)
	a.spill.remove(v)

	a.alias[v] = u
	a.g.moveList[u] = append(a.g.moveList[u], a.g.moveList[v]...)

	for _, t := range a.g.adj[v] {
		if !a.onStack[t] && a.findAlias(t) == t {
			a.g.addEdge(u, t)
			a.decrementDegree(t)
		}
	}

	if a.g.degree[u] >= a.g.k && a.freeze.contains(u) {
		a.freeze.remove(u)
		a.spill.push(u)
	}
}

// addWorkList promotes v from freeze to simplify once it is no longer
// move-related and has acceptable degree.
func (a *allocator) addWorkList(v int32) {
	if a.g.isPrecolored(v) {
		return
	}
	if !a.g.moveRelated(v) && a.g.degree[v] < a.g.k {
		a.freeze.remove(v)
		a.simplify.push(v)
	}
}

func (a *allocator) freezeStep() {
	v := a.freeze.pop()
	debug.Printf("regalloc: freeze %s", a.g.tmpOf(v))
	a.simplify.push(v)
	a.freezeMoves(v)
}

// freezeMoves kills every move still touching v and, for each move's
// other endpoint, promotes it to simplify if that was its last move.
func (a *allocator) freezeMoves(v int32) {
	for _, m := range a.g.moveList[v] {
		mv := &a.g.moves[m]
		if mv.state != moveWorklist && mv.state != moveActive {
			continue
		}

		other := a.g.otherEndpoint(m, v)
		if a.findAlias(other) != other {
			other = a.findAlias(other)
		}

		if mv.state == moveWorklist {
			a.moveWork.remove(m)
		}
		mv.state = moveFrozen

		if other != v && !a.g.isPrecolored(other) && !a.g.moveRelated(other) && a.g.degree[other] < a.g.k {
			a.freeze.remove(other)
			a.simplify.push(other)
		}
	}
}

// selectSpillStep picks the highest-degree candidate in the spill
// worklist (ties broken by worklist iteration order, per spec §4.3),
// demotes it to simplify, and freezes its moves. Candidates introduced
// by a previous round's spill insertion are skipped: they are fresh,
// instruction-local temporaries, and considering them for spill again
// is exactly the non-termination pitfall spec §9 flags.
func (a *allocator) selectSpillStep() {
	best := highestDegree(a.spill.items, a.g.degree, func(id int32) bool { return !a.ineligible[id] })
	if best < 0 {
		// Every remaining candidate was spill-ineligible. Pick one
		// anyway so the loop still terminates instead of spinning
		// forever with a permanently non-empty spill worklist.
		best = highestDegree(a.spill.items, a.g.degree, nil)
	}

	debug.Printf("regalloc: select-spill %s (degree %d)", a.g.tmpOf(best), a.g.degree[best])
	a.spill.remove(best)
	a.simplify.push(best)
	a.freezeMoves(best)
}

func highestDegree(ids []int32, degree []int32, accept func(int32) bool) int32 {
	best := int32(-1)
	bestDegree := int32(-1)
	for _, id := range ids {
		if accept != nil && !accept(id) {
			continue
		}
		if degree[id] > bestDegree {
			bestDegree = degree[id]
			best = id
		}
	}
	return best
}
