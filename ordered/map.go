package ordered

import (
	"cmp"
	"iter"
	"sort"
)

type mapEntry[T cmp.Ordered, V any] struct {
	key T
	val V
}

// Map is an ordered map keyed by T, backed by a sorted slice of entries.
type Map[T cmp.Ordered, V any] struct {
	entries []mapEntry[T, V]
}

// NewMap returns an empty ordered map.
func NewMap[T cmp.Ordered, V any]() *Map[T, V] {
	return &Map[T, V]{}
}

func (m *Map[T, V]) search(key T) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].key >= key })
	return i, i < len(m.entries) && m.entries[i].key == key
}

// Get looks up key, returning (value, true) if present.
func (m *Map[T, V]) Get(key T) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	i, found := m.search(key)
	if !found {
		return zero, false
	}
	return m.entries[i].val, true
}

// Set installs val under key, overwriting any existing mapping.
func (m *Map[T, V]) Set(key T, val V) {
	i, found := m.search(key)
	if found {
		m.entries[i].val = val
		return
	}
	m.entries = append(m.entries, mapEntry[T, V]{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = mapEntry[T, V]{key: key, val: val}
}

// Delete removes key; a no-op if absent.
func (m *Map[T, V]) Delete(key T) {
	i, found := m.search(key)
	if !found {
		return
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
}

// Len returns the number of entries.
func (m *Map[T, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the ordered set of keys.
func (m *Map[T, V]) Keys() *Set[T] {
	out := &Set[T]{}
	for _, e := range m.entries {
		out.items = append(out.items, e.key)
	}
	return out
}

// All iterates entries in ascending key order.
func (m *Map[T, V]) All() iter.Seq2[T, V] {
	return func(yield func(T, V) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// AllAfter iterates entries whose key is strictly greater than after.
func (m *Map[T, V]) AllAfter(after T) iter.Seq2[T, V] {
	return func(yield func(T, V) bool) {
		if m == nil {
			return
		}
		i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].key > after })
		for _, e := range m.entries[i:] {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Iterate calls fn for each entry in ascending key order, stopping early if
// fn returns false.
func (m *Map[T, V]) Iterate(fn func(T, V) bool) {
	for k, v := range m.All() {
		if !fn(k, v) {
			return
		}
	}
}

// Merge returns a new map containing every entry of m and other. Callers in
// this module only ever merge maps with disjoint key sets (real/virtual
// child maps, per invariant 2); where keys collide, other wins.
func (m *Map[T, V]) Merge(other *Map[T, V]) *Map[T, V] {
	out := NewMap[T, V]()
	for k, v := range m.All() {
		out.Set(k, v)
	}
	for k, v := range other.All() {
		out.Set(k, v)
	}
	return out
}

// Clone returns an independent shallow copy.
func (m *Map[T, V]) Clone() *Map[T, V] {
	out := &Map[T, V]{entries: make([]mapEntry[T, V], len(m.entries))}
	copy(out.entries, m.entries)
	return out
}
