// Package mop implements the Redundant Discrimination Tree's node type
// (Mop, "memory-organisation packet"), its local structural operations, and
// the reorganization/absorption/query engines that operate on it. The
// package mirrors the teacher's mutable package: node data, node storage,
// and the tree-reorganization algorithms that mutate it all live together
// so unexported fields can be reached across files, the way bufferedNode,
// nodeStoreBuffered, and Trie do in mutable/node.go, mutable/nodestore.go,
// and mutable/trie.go.
package mop

import (
	"cmp"
	"fmt"

	"github.com/ordt-go/rdt/ordered"
	"github.com/ordt-go/rdt/strength"
)

// Mop is a node of the Redundant Discrimination Tree: its characterising
// set C, real and virtual child edges, and its three decaying strengths.
// Two Mops are considered equal by C alone (invariant 5); the reorganization
// engine branches on pointer identity instead, to detect fan-in, so methods
// that need that distinction never compare by C.
type Mop[T cmp.Ordered] struct {
	C  *ordered.Set[T]
	Rc *ordered.Map[T, *Mop[T]]
	Vc *ordered.Map[T, *Mop[T]]

	traceStrength   strength.Model
	epitomeStrength strength.Model
	undifStrength   strength.Model
}

// TabulaRasa returns the empty-set root node (§3.3), with all three
// strengths at zero.
func TabulaRasa[T cmp.Ordered](model strength.Model) *Mop[T] {
	return &Mop[T]{
		C:               ordered.NewSet[T](),
		Rc:              ordered.NewMap[T, *Mop[T]](),
		Vc:              ordered.NewMap[T, *Mop[T]](),
		traceStrength:   model.New(false),
		epitomeStrength: model.New(false),
		undifStrength:   model.New(false),
	}
}

// NewTrace builds a trace node over C: trace strength pre-incremented,
// epitome strength zero, undif strength pre-incremented (§3.3). seed is any
// existing strength of the same Model family, used only to mint zero/one
// values of that family via Model.New.
func NewTrace[T cmp.Ordered](c *ordered.Set[T], seed strength.Model) *Mop[T] {
	return &Mop[T]{
		C:               c,
		Rc:              ordered.NewMap[T, *Mop[T]](),
		Vc:              ordered.NewMap[T, *Mop[T]](),
		traceStrength:   seed.New(true),
		epitomeStrength: seed.New(false),
		undifStrength:   seed.New(true),
	}
}

// NewEpitome builds an epitome node over c, installing childrenV as its
// virtual children, with trace strength zero and epitome/undif strengths
// copied from the parent's current undif strength (§3.3).
func NewEpitome[T cmp.Ordered](c *ordered.Set[T], childrenV *ordered.Map[T, *Mop[T]], parentUndif strength.Model) *Mop[T] {
	return &Mop[T]{
		C:               c,
		Rc:              ordered.NewMap[T, *Mop[T]](),
		Vc:              childrenV,
		traceStrength:   parentUndif.New(false),
		epitomeStrength: parentUndif,
		undifStrength:   parentUndif,
	}
}

// Assert panics with a formatted message if cond is false. Structural
// invariant violations are programmer errors (§7); they abort the process
// rather than return a recoverable error.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// TraceStrength returns the current trace strength value.
func (m *Mop[T]) TraceStrength() float64 { return m.traceStrength.Value() }

// EpitomeStrength returns the current epitome strength value.
func (m *Mop[T]) EpitomeStrength() float64 { return m.epitomeStrength.Value() }

// UndifStrength returns the current undifferentiated strength value.
func (m *Mop[T]) UndifStrength() float64 { return m.undifStrength.Value() }

func (m *Mop[T]) incrTrace()   { m.traceStrength = m.traceStrength.Increase() }
func (m *Mop[T]) incrEpitome() { m.epitomeStrength = m.epitomeStrength.Increase() }
func (m *Mop[T]) incrUndif()   { m.undifStrength = m.undifStrength.Increase() }

// IsTrace reports whether this node was directly observed as an excerpt.
func (m *Mop[T]) IsTrace() bool { return m.TraceStrength() > 0 }

// IsEpitome reports whether this node has any child, real or virtual.
func (m *Mop[T]) IsEpitome() bool { return m.Rc.Len() > 0 || m.Vc.Len() > 0 }

// InsertReal installs child under each key in keys, overwriting any
// existing real mapping (§4.3).
func (m *Mop[T]) InsertReal(keys *ordered.Set[T], child *Mop[T]) {
	for k := range keys.All() {
		m.Rc.Set(k, child)
	}
}

// InsertVirtual installs child under each key in keys, overwriting any
// existing virtual mapping (§4.3).
func (m *Mop[T]) InsertVirtual(keys *ordered.Set[T], child *Mop[T]) {
	for k := range keys.All() {
		m.Vc.Set(k, child)
	}
}

// DeleteVirtual removes each key from Vc (§4.3).
func (m *Mop[T]) DeleteVirtual(keys *ordered.Set[T]) {
	for k := range keys.All() {
		m.Vc.Delete(k)
	}
}

// GetReal looks up a real child edge.
func (m *Mop[T]) GetReal(j T) (*Mop[T], bool) { return m.Rc.Get(j) }

// GetVirtual looks up a virtual child edge.
func (m *Mop[T]) GetVirtual(j T) (*Mop[T], bool) { return m.Vc.Get(j) }

// GetRealWithIndices returns the child at Rc[j] together with its real-index
// set at m: every key i, other than those in m.C or keys(m.Vc), whose real
// edge also resolves to the same child by pointer identity (§3.1).
func (m *Mop[T]) GetRealWithIndices(j T) (*Mop[T], *ordered.Set[T], bool) {
	child, ok := m.Rc.Get(j)
	if !ok {
		return nil, nil, false
	}
	indices := ordered.NewSet[T]()
	candidates := child.C.Difference(m.C).Difference(m.Vc.Keys())
	for i := range candidates.All() {
		if at, ok := m.Rc.Get(i); ok && at == child {
			indices.Insert(i)
		}
	}
	return child, indices, true
}

// GetVirtualWithIndices is the virtual-map counterpart of
// GetRealWithIndices.
func (m *Mop[T]) GetVirtualWithIndices(j T) (*Mop[T], *ordered.Set[T], bool) {
	child, ok := m.Vc.Get(j)
	if !ok {
		return nil, nil, false
	}
	indices := ordered.NewSet[T]()
	candidates := child.C.Difference(m.C).Difference(m.Rc.Keys())
	for i := range candidates.All() {
		if at, ok := m.Vc.Get(i); ok && at == child {
			indices.Insert(i)
		}
	}
	return child, indices, true
}

// MergedChildren returns Rc ∪ Vc (disjoint by invariant 2).
func (m *Mop[T]) MergedChildren() *ordered.Map[T, *Mop[T]] {
	return m.Rc.Merge(m.Vc)
}

// IsDisjointChildIndices reports whether neither child map has a key in set.
func (m *Mop[T]) IsDisjointChildIndices(set *ordered.Set[T]) bool {
	return m.Rc.Keys().IsDisjoint(set) && m.Vc.Keys().IsDisjoint(set)
}

// VerifyMop checks invariant 1 locally: child-map keys disjoint from C, and
// Rc/Vc keys disjoint from each other.
func (m *Mop[T]) VerifyMop() error {
	rIdx, vIdx := m.Rc.Keys(), m.Vc.Keys()
	if !rIdx.IsDisjoint(m.C) {
		return fmt.Errorf("mop: real indices overlap C: %v <> %v", rIdx.Slice(), m.C.Slice())
	}
	if !vIdx.IsDisjoint(m.C) {
		return fmt.Errorf("mop: virtual indices overlap C: %v <> %v", vIdx.Slice(), m.C.Slice())
	}
	if !rIdx.IsDisjoint(vIdx) {
		return fmt.Errorf("mop: real and virtual indices overlap: %v", m.String())
	}
	return nil
}

// VerifyTree recursively checks VerifyMop over every node reachable via
// real edges, visiting each child once regardless of fan-in.
func (m *Mop[T]) VerifyTree() error {
	if err := m.VerifyMop(); err != nil {
		return err
	}
	a := m.Rc.Keys()
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		child, indices, _ := m.GetRealWithIndices(j)
		if err := child.VerifyTree(); err != nil {
			return err
		}
		a = a.Difference(indices)
	}
	return nil
}

// IsCompatibleWith reports whether m.C, and every node reachable from m by
// following keys of excerpt, has a characterising set that is a subset of
// excerpt (§3.2 invariant 4). RDT.IncludeExcerpt asserts it on every call,
// between reorganization and absorption.
func (m *Mop[T]) IsCompatibleWith(excerpt *ordered.Set[T]) bool {
	if !m.C.IsSubsetOf(excerpt) {
		return false
	}
	for j := range excerpt.All() {
		if child, ok := m.GetReal(j); ok {
			if !child.IsCompatibleWith(excerpt) {
				return false
			}
		} else if child, ok := m.GetVirtual(j); ok {
			if !child.IsCompatibleWith(excerpt) {
				return false
			}
		}
	}
	return true
}

// String renders a short one-line summary: C and the keys of each child map.
func (m *Mop[T]) String() string {
	return fmt.Sprintf("C:%v Rc:%v Vc:%v", m.C.Slice(), m.Rc.Keys().Slice(), m.Vc.Keys().Slice())
}

// Dump renders a recursive, indented tree dump rooted at m, in the spirit
// of the teacher's dangerouslyDumpCacheToString / format_mop.
func (m *Mop[T]) Dump(indent string) string {
	out := fmt.Sprintf("%sC:%v trace=%.3f epitome=%.3f undif=%.3f\n",
		indent, m.C.Slice(), m.TraceStrength(), m.EpitomeStrength(), m.UndifStrength())
	a := m.Rc.Keys()
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		child, indices, _ := m.GetRealWithIndices(j)
		out += fmt.Sprintf("%s  R%v ->\n%s", indent, indices.Slice(), child.Dump(indent+"    "))
		a = a.Difference(indices)
	}
	a = m.Vc.Keys()
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		child, indices, _ := m.GetVirtualWithIndices(j)
		out += fmt.Sprintf("%s  V%v -> C:%v\n", indent, indices.Slice(), child.C.Slice())
		a = a.Difference(indices)
	}
	return out
}
