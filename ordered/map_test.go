package ordered_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordt-go/rdt/ordered"
)

func TestMapSetGetDelete(t *testing.T) {
	m := ordered.NewMap[string, int]()
	m.Set("b", 2)
	m.Set("a", 1)
	m.Set("a", 11)

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 11, v)
	require.Equal(t, 2, m.Len())

	m.Delete("a")
	_, ok = m.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, m.Len())
}

func TestMapKeysAscending(t *testing.T) {
	m := ordered.NewMap[int, string]()
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")
	require.Equal(t, []int{1, 2, 3}, m.Keys().Slice())
}

func TestMapAllAfter(t *testing.T) {
	m := ordered.NewMap[int, string]()
	for i := 1; i <= 5; i++ {
		m.Set(i, "x")
	}
	var keys []int
	for k := range m.AllAfter(3) {
		keys = append(keys, k)
	}
	require.Equal(t, []int{4, 5}, keys)
}

func TestMapMergeDisjoint(t *testing.T) {
	a := ordered.NewMap[string, int]()
	a.Set("x", 1)
	b := ordered.NewMap[string, int]()
	b.Set("y", 2)

	merged := a.Merge(b)
	require.Equal(t, 2, merged.Len())
	vx, _ := merged.Get("x")
	vy, _ := merged.Get("y")
	require.Equal(t, 1, vx)
	require.Equal(t, 2, vy)
}
