package mop

import "github.com/ordt-go/rdt/ordered"

// Absorb integrates excerpt e into the subtree rooted at m, assuming m is
// already compatible with e (every node reachable under e has a C that is
// a subset of e — the reorganization pass guarantees this before Absorb
// runs). It stores the trace node for e in *newTrace, reusing one installed
// by an earlier recursive call against the same e where possible, and bumps
// m's epitome or trace strength depending on whether m itself is the
// exact match (§4.5).
func (m *Mop[T]) Absorb(e *ordered.Set[T], newTrace **Mop[T]) {
	defer m.incrUndif()

	x := e.Difference(m.C)
	if x.IsEmpty() {
		*newTrace = m
		m.incrTrace()
		return
	}

	a := x.Intersection(m.Rc.Keys())
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		p, indices, _ := m.GetRealWithIndices(j)
		p.Absorb(e, newTrace)
		a = a.Difference(indices)
	}

	remaining := x.Difference(m.Rc.Keys()).Difference(m.Vc.Keys())
	if !remaining.IsEmpty() {
		if *newTrace != nil {
			m.InsertVirtual(remaining, *newTrace)
		} else {
			t := NewTrace(e, m.traceStrength)
			m.InsertReal(remaining, t)
			*newTrace = t
		}
	}
	m.incrEpitome()
}
