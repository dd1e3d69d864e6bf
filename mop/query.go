package mop

import (
	"cmp"

	"github.com/ordt-go/rdt/ordered"
)

// CompleteMatch descends from root following real-then-virtual edges for
// the smallest element of q not yet covered by the current node's C, until
// that node's C covers q, and returns that node (§4.6.1). If at some node
// neither a real nor a virtual edge exists for that element, it returns
// nil, so a non-nil result always has a C that is a superset of q.
func CompleteMatch[T cmp.Ordered](root *Mop[T], q *ordered.Set[T]) *Mop[T] {
	p := root
	remaining := q.Difference(p.C)
	for {
		j, ok := remaining.First()
		if !ok {
			break
		}
		child, found := p.GetReal(j)
		if !found {
			child, found = p.GetVirtual(j)
		}
		if !found {
			return nil
		}
		p = child
		remaining = q.Difference(p.C)
	}
	return p
}

// nodeSet is an identity-keyed accumulator: the reorganization-free query
// algorithms can reach the same node through more than one path (real and
// virtual edges into the same child), so membership is pointer identity,
// not characterising-set equality.
type nodeSet[T cmp.Ordered] map[*Mop[T]]struct{}

func (s nodeSet[T]) add(m *Mop[T]) { s[m] = struct{}{} }

// PartialMatch descends from m only along edges keyed by elements of q and
// returns the nodes reached whose characterising set intersects q and none
// of whose child-edge keys is in q (§4.6.2). Nodes that intersect q but
// still have a child edge keyed by an element of q are passed through, not
// returned. Each child is entered only via the smallest element of
// (child.C − m.C) ∩ q, so no node is collected twice.
func (m *Mop[T]) PartialMatch(q *ordered.Set[T]) []*Mop[T] {
	s := make(nodeSet[T])
	m.partialMatch(q, nil, s)
	out := make([]*Mop[T], 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

func (m *Mop[T]) partialMatch(q *ordered.Set[T], after *T, s nodeSet[T]) {
	if m.IsDisjointChildIndices(q) {
		if !m.C.IsDisjoint(q) {
			s.add(m)
		}
		return
	}

	diff := q.Difference(m.C)
	var keys []T
	if after == nil {
		for k := range diff.All() {
			keys = append(keys, k)
		}
	} else {
		for k := range diff.AllAfter(*after) {
			keys = append(keys, k)
		}
	}

	for _, j := range keys {
		child, found := m.GetReal(j)
		if !found {
			child, found = m.GetVirtual(j)
		}
		if !found {
			continue
		}
		first, has := child.C.Difference(m.C).Intersection(q).First()
		if has && first == j {
			child.partialMatch(q, &j, s)
		}
	}
}

// Traces returns every trace node reachable from m, each visited exactly
// once via its ascending-first reaching edge (§4.6.3).
func (m *Mop[T]) Traces() []*Mop[T] {
	s := make(nodeSet[T])
	m.traces(nil, s)
	out := make([]*Mop[T], 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

func (m *Mop[T]) traces(after *T, s nodeSet[T]) {
	if m.IsTrace() {
		s.add(m)
	}
	m.visitMergedChildren(after, func(j T, child *Mop[T]) {
		child.traces(&j, s)
	})
}

// Epitomes returns every epitome node reachable from m, each visited
// exactly once via its ascending-first reaching edge (§4.6.3).
func (m *Mop[T]) Epitomes() []*Mop[T] {
	s := make(nodeSet[T])
	m.epitomes(nil, s)
	out := make([]*Mop[T], 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

func (m *Mop[T]) epitomes(after *T, s nodeSet[T]) {
	if m.IsEpitome() {
		s.add(m)
	}
	m.visitMergedChildren(after, func(j T, child *Mop[T]) {
		child.epitomes(&j, s)
	})
}

// visitMergedChildren iterates m's merged child map (optionally starting
// strictly after a given key) and invokes visit on each child reached via
// its ascending-first edge relative to m.
func (m *Mop[T]) visitMergedChildren(after *T, visit func(j T, child *Mop[T])) {
	merged := m.MergedChildren()
	var pairs []struct {
		j T
		c *Mop[T]
	}
	if after == nil {
		for j, c := range merged.All() {
			pairs = append(pairs, struct {
				j T
				c *Mop[T]
			}{j, c})
		}
	} else {
		for j, c := range merged.AllAfter(*after) {
			pairs = append(pairs, struct {
				j T
				c *Mop[T]
			}{j, c})
		}
	}
	for _, p := range pairs {
		first, has := p.c.C.Difference(m.C).First()
		if has && first == p.j {
			visit(p.j, p.c)
		}
	}
}
