// Package ordered provides generic ordered set and map containers over any
// cmp.Ordered symbol domain, iterated strictly in ascending key order.
package ordered

import (
	"cmp"
	"iter"
	"sort"
)

// Set is an ordered set of T, backed by a sorted slice. Sets this small
// (excerpts rarely exceed a few dozen symbols) favor a flat sorted slice
// over a tree: ascending iteration and AllAfter fall out of binary
// search for free.
type Set[T cmp.Ordered] struct {
	items []T
}

// NewSet builds a Set from the given items, deduplicated and sorted.
func NewSet[T cmp.Ordered](items ...T) *Set[T] {
	s := &Set[T]{}
	for _, it := range items {
		s.Insert(it)
	}
	return s
}

func (s *Set[T]) search(item T) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] >= item })
	return i, i < len(s.items) && s.items[i] == item
}

// Insert adds item to the set; a no-op if already present.
func (s *Set[T]) Insert(item T) {
	i, found := s.search(item)
	if found {
		return
	}
	s.items = append(s.items, item)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = item
}

// Delete removes item from the set; a no-op if absent.
func (s *Set[T]) Delete(item T) {
	i, found := s.search(item)
	if !found {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// Contains reports whether item is a member.
func (s *Set[T]) Contains(item T) bool {
	_, found := s.search(item)
	return found
}

// Len returns the number of elements.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// IsEmpty reports whether the set has no elements.
func (s *Set[T]) IsEmpty() bool {
	return s.Len() == 0
}

// First returns the smallest element, or false if the set is empty.
func (s *Set[T]) First() (T, bool) {
	var zero T
	if s.IsEmpty() {
		return zero, false
	}
	return s.items[0], true
}

// Clone returns an independent copy.
func (s *Set[T]) Clone() *Set[T] {
	out := &Set[T]{items: make([]T, len(s.items))}
	copy(out.items, s.items)
	return out
}

// Slice returns the elements in ascending order. The caller must not mutate
// the returned slice.
func (s *Set[T]) Slice() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// All iterates every element in ascending order.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if s == nil {
			return
		}
		for _, it := range s.items {
			if !yield(it) {
				return
			}
		}
	}
}

// AllAfter iterates every element strictly greater than after, ascending.
func (s *Set[T]) AllAfter(after T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if s == nil {
			return
		}
		i := sort.Search(len(s.items), func(i int) bool { return s.items[i] > after })
		for _, it := range s.items[i:] {
			if !yield(it) {
				return
			}
		}
	}
}

// Iterate calls fn for each element in ascending order, stopping early if
// fn returns false.
func (s *Set[T]) Iterate(fn func(T) bool) {
	for it := range s.All() {
		if !fn(it) {
			return
		}
	}
}

// Union returns a new set containing every element of s or other.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	out := s.Clone()
	for it := range other.All() {
		out.Insert(it)
	}
	return out
}

// Intersection returns a new set containing elements present in both.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	out := &Set[T]{}
	for it := range s.All() {
		if other.Contains(it) {
			out.items = append(out.items, it)
		}
	}
	return out
}

// Difference returns a new set containing elements of s not in other.
func (s *Set[T]) Difference(other *Set[T]) *Set[T] {
	out := &Set[T]{}
	for it := range s.All() {
		if !other.Contains(it) {
			out.items = append(out.items, it)
		}
	}
	return out
}

// IsDisjoint reports whether s and other share no elements.
func (s *Set[T]) IsDisjoint(other *Set[T]) bool {
	for it := range s.All() {
		if other.Contains(it) {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every element of s is in other.
func (s *Set[T]) IsSubsetOf(other *Set[T]) bool {
	for it := range s.All() {
		if !other.Contains(it) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether every element of other is in s.
func (s *Set[T]) IsSupersetOf(other *Set[T]) bool {
	return other.IsSubsetOf(s)
}

// Equal reports whether s and other contain the same elements.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	return s.IsSubsetOf(other)
}
