// Package rdt implements a Redundant Discrimination Tree: an in-memory
// associative memory that ingests unordered excerpts over a totally
// ordered symbol domain and supports complete match, partial match, and
// trace/epitome enumeration. It is the facade layer over package mop, the
// way the teacher's Trie wraps nodeStoreBuffered.
package rdt

import (
	"cmp"
	"fmt"
	"sort"

	"github.com/ordt-go/rdt/mop"
	"github.com/ordt-go/rdt/ordered"
	"github.com/ordt-go/rdt/strength"
)

// RDT owns the root Mop node and routes every public operation to package
// mop's reorganization, absorption, and query engines (§5 control flow:
// include_excerpt -> reorganize-real -> reorganize-virtual -> absorb).
type RDT[T cmp.Ordered] struct {
	root *mop.Mop[T]
}

// New returns a fresh tree containing only the empty-set root, using the
// reference Default strength model.
func New[T cmp.Ordered]() *RDT[T] {
	return NewWithModel[T](strength.NewDefault(false))
}

// NewWithModel is New with an explicit strength.Model, for callers that
// want a different decay rate or a wholly different strength formula while
// keeping the same tree algorithms (§4.2: "implementations may substitute
// any contract-conforming function").
func NewWithModel[T cmp.Ordered](model strength.Model) *RDT[T] {
	return &RDT[T]{root: mop.TabulaRasa[T](model)}
}

// IncludeExcerpt absorbs e into the tree. It is idempotent up to strength:
// absorbing the same set twice leaves the node and edge set unchanged,
// only strengths advance (§6, §8 property 5).
func (r *RDT[T]) IncludeExcerpt(e *ordered.Set[T]) {
	r.root.ReorganizeForExcerpt(e)

	mop.Assert(r.root.IsCompatibleWith(e),
		"rdt: tree not compatible with excerpt %v after reorganization", e.Slice())

	var newTrace *mop.Mop[T]
	r.root.Absorb(e, &newTrace)
}

// IncludeExperience is include_excerpt(set(seq)): a convenience for
// absorbing an ordered sequence of symbols as an unordered excerpt (§6).
func (r *RDT[T]) IncludeExperience(seq []T) {
	r.IncludeExcerpt(ordered.NewSet(seq...))
}

// DecrementStrengths applies one decay step to every reachable node (§4.7).
func (r *RDT[T]) DecrementStrengths() {
	r.root.DecrementStrengths()
}

// CompleteMatch returns the most specific stored node whose characterising
// set subsumes q, or nil if none exists (§4.6.1).
func (r *RDT[T]) CompleteMatch(q *ordered.Set[T]) *Node[T] {
	n := mop.CompleteMatch(r.root, q)
	if n == nil || !n.C.IsSupersetOf(q) {
		return nil
	}
	return newNode(n)
}

// PartialMatches returns the nodes found by mop's PartialMatch from the
// root, ordered by C: nodes whose characterising set shares at least one
// element with q and that have no child edge keyed by an element of q
// (§4.6.2). Nodes that share an element with q but have such an edge are
// not included.
func (r *RDT[T]) PartialMatches(q *ordered.Set[T]) []*Node[T] {
	return sortedNodes(r.root.PartialMatch(q))
}

// Traces returns every trace node in the tree, ordered by C (§4.6.3).
func (r *RDT[T]) Traces() []*Node[T] {
	return sortedNodes(r.root.Traces())
}

// Epitomes returns every epitome node in the tree, ordered by C (§4.6.3).
func (r *RDT[T]) Epitomes() []*Node[T] {
	return sortedNodes(r.root.Epitomes())
}

// DumpString renders a recursive, indented dump of the whole tree, in the
// spirit of the teacher's dangerouslyDumpCacheToString.
func (r *RDT[T]) DumpString() string {
	return r.root.Dump("")
}

// Node is a read-only view onto a Mop, exposing only what §6 names: C and
// the four derived observables.
type Node[T cmp.Ordered] struct {
	C               []T
	TraceStrength   float64
	EpitomeStrength float64
	IsTrace         bool
	IsEpitome       bool
}

func newNode[T cmp.Ordered](m *mop.Mop[T]) *Node[T] {
	return &Node[T]{
		C:               m.C.Slice(),
		TraceStrength:   m.TraceStrength(),
		EpitomeStrength: m.EpitomeStrength(),
		IsTrace:         m.IsTrace(),
		IsEpitome:       m.IsEpitome(),
	}
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("C:%v trace=%.3f epitome=%.3f", n.C, n.TraceStrength, n.EpitomeStrength)
}

func sortedNodes[T cmp.Ordered](ms []*mop.Mop[T]) []*Node[T] {
	out := make([]*Node[T], len(ms))
	for i, m := range ms {
		out[i] = newNode(m)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessSlice(out[i].C, out[j].C)
	})
	return out
}

// lessSlice orders two characterising sets lexicographically: shorter-and-a-
// prefix sorts first, otherwise the first differing element decides.
func lessSlice[T cmp.Ordered](a, b []T) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
