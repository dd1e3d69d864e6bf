package mop

import (
	"cmp"

	"github.com/ordt-go/rdt/ordered"
)

// ReorganizeForExcerpt runs the full reorganization pass for an incoming
// excerpt e: reorganize-real, then reorganize-virtual, sharing one fix-v-links
// ledger across both (§5 control flow, §4.4.3/§4.4.5). After it returns, m is
// compatible with e and Absorb may run.
func (m *Mop[T]) ReorganizeForExcerpt(e *ordered.Set[T]) {
	var u []pair[T]
	m.reorganizeReal(e, m, &u)
	m.reorganizeVirtual(e, m, &u)
}

// pair records a rewiring done during one reorganizeReal/reorganizeVirtual
// pass: every virtual edge pointing at old must be retargeted to new
// wherever new's characterising set covers the edge's source node (§4.4.6).
type pair[T cmp.Ordered] struct {
	old, new *Mop[T]
}

// interposeReal installs a fresh epitome between m and the real child at j,
// over the intersection of the child's elements with e, pushing the old
// child down as its real child (§4.4.1).
func (m *Mop[T]) interposeReal(j T, e *ordered.Set[T]) {
	p, pIndices, _ := m.GetRealWithIndices(j)
	n := NewEpitome(p.C.Intersection(e), p.MergedChildren(), p.undifStrength)
	n.InsertReal(p.C.Difference(n.C), p)
	m.InsertReal(pIndices, n)
}

// split handles the case where e covers only part of j's real-index set:
// it installs the new epitome as real only over e∩indices(p), leaving the
// remaining indices pointing directly at p, and demotes p to a virtual
// child of the new epitome (§4.4.2).
func (m *Mop[T]) split(j T, e *ordered.Set[T]) {
	p, pIndices, _ := m.GetRealWithIndices(j)
	n := NewEpitome(p.C.Intersection(e), p.MergedChildren(), p.undifStrength)
	n.InsertVirtual(p.C.Difference(n.C), p)
	m.InsertReal(e.Intersection(pIndices), n)
}

// reorganizeReal descends m's real children that intersect e, splitting or
// interposing wherever the excerpt under construction crosses a real edge,
// and recording every rewrite in u so later fix-v-links passes can repair
// virtual edges that pointed at the nodes it displaced (§4.4.3).
func (m *Mop[T]) reorganizeReal(e *ordered.Set[T], root *Mop[T], u *[]pair[T]) {
	a := e.Intersection(m.Rc.Keys())
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		p, indices, _ := m.GetRealWithIndices(j)
		switch {
		case !indices.IsSubsetOf(e):
			m.split(j, e)
			n, _ := m.GetReal(j)
			n.fixVLinksLocal(*u)
			root.fixVLinksGlobal(pair[T]{old: p, new: n})
			*u = append(*u, pair[T]{old: p, new: n})
		case !p.C.Difference(m.C).IsSubsetOf(e):
			m.interposeReal(j, e)
			n, _ := m.GetReal(j)
			n.fixVLinksLocal(*u)
			root.fixVLinksGlobal(pair[T]{old: p, new: n})
			*u = append(*u, pair[T]{old: p, new: n})
		default:
			p.reorganizeReal(e, root, u)
		}
		a = a.Difference(indices)
	}
}

// interposeVirtual installs a fresh epitome between m and the virtual
// child at j, reroutes it as a real edge over e∩indices(p), and drops the
// old virtual mapping (§4.4.4). Insert happens before delete (open question:
// keys(p.C)∩e are identical in both maps only transiently).
func (m *Mop[T]) interposeVirtual(j T, e *ordered.Set[T]) {
	p, pIndices, _ := m.GetVirtualWithIndices(j)
	n := NewEpitome(p.C.Intersection(e), p.MergedChildren(), p.undifStrength)
	n.InsertVirtual(p.C.Difference(n.C), p)
	target := e.Intersection(pIndices)
	m.InsertReal(target, n)
	m.DeleteVirtual(target)
}

// reorganizeVirtual is the virtual-edge counterpart of reorganizeReal: it
// first interposes over every virtual child not wholly contained in e, then
// descends into every real child to repeat the process deeper in the tree
// (§4.4.5).
func (m *Mop[T]) reorganizeVirtual(e *ordered.Set[T], root *Mop[T], u *[]pair[T]) {
	av := e.Intersection(m.Vc.Keys())
	for {
		j, ok := av.First()
		if !ok {
			break
		}
		p, indices, _ := m.GetVirtualWithIndices(j)
		if p.C.IsSubsetOf(e) {
			av = av.Difference(indices)
			continue
		}
		m.interposeVirtual(j, e)
		n, nIndices, _ := m.GetRealWithIndices(j)
		n.fixVLinksLocal(*u)
		root.fixVLinksGlobal(pair[T]{old: p, new: n})
		*u = append(*u, pair[T]{old: p, new: n})
		av = av.Difference(nIndices)
	}

	a := e.Intersection(m.Rc.Keys())
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		p, indices, _ := m.GetRealWithIndices(j)
		p.reorganizeVirtual(e, root, u)
		a = a.Difference(indices)
	}
}

// fixVLinksLocal rewrites m's own virtual edges per u: any edge pointing at
// a displaced node old is retargeted to new wherever new.C covers m.C
// (§4.4.6).
func (m *Mop[T]) fixVLinksLocal(u []pair[T]) {
	for _, pr := range u {
		if !pr.new.C.IsSupersetOf(m.C) {
			continue
		}
		for k := range pr.new.C.All() {
			if child, ok := m.GetVirtual(k); ok && child == pr.old {
				m.Vc.Set(k, pr.new)
			}
		}
	}
}

// fixVLinksGlobal walks the whole real-edge tree from m, retargeting every
// virtual edge that points at pr.old to pr.new wherever pr.new.C covers the
// visited node's C (§4.4.6). Call on the tree root after each rewrite.
func (m *Mop[T]) fixVLinksGlobal(pr pair[T]) {
	if !pr.new.C.IsSupersetOf(m.C) {
		return
	}
	cr := pr.new.C.Difference(m.C)
	for k := range cr.All() {
		if child, ok := m.GetVirtual(k); ok && child == pr.old {
			m.Vc.Set(k, pr.new)
		}
	}
	a := cr.Intersection(m.Rc.Keys())
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		child, indices, _ := m.GetRealWithIndices(j)
		child.fixVLinksGlobal(pr)
		a = a.Difference(indices)
	}
}
