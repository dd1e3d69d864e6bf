package mop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordt-go/rdt/mop"
	"github.com/ordt-go/rdt/ordered"
	"github.com/ordt-go/rdt/strength"
)

func include(t *testing.T, root *mop.Mop[string], elems ...string) {
	t.Helper()
	e := ordered.NewSet(elems...)
	root.ReorganizeForExcerpt(e)
	require.True(t, root.IsCompatibleWith(e), "tree not compatible with %v after reorganization", elems)
	var trace *mop.Mop[string]
	root.Absorb(e, &trace)
	require.NotNil(t, trace)
	require.True(t, trace.C.Equal(e))
}

func freshRoot() *mop.Mop[string] {
	return mop.TabulaRasa[string](strength.NewDefault(false))
}

func TestTabulaRasaIsEmptyAndNotTraceOrEpitome(t *testing.T) {
	root := freshRoot()
	require.True(t, root.C.IsEmpty())
	require.False(t, root.IsTrace())
	require.False(t, root.IsEpitome())
}

func TestSingleIncludeBecomesExactTrace(t *testing.T) {
	root := freshRoot()
	include(t, root, "x")

	n := mop.CompleteMatch(root, ordered.NewSet("x"))
	require.NotNil(t, n)
	require.True(t, n.C.Equal(ordered.NewSet("x")))
	require.True(t, n.IsTrace())
}

func TestScenarioAFourWayAbsorb(t *testing.T) {
	root := freshRoot()
	include(t, root, "a", "b", "c", "d")
	include(t, root, "a", "b", "c")
	include(t, root, "a", "b", "d")
	include(t, root, "a", "d")

	require.NoError(t, root.VerifyTree())

	cases := []struct {
		query []string
		want  []string
	}{
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{[]string{"a", "b", "d"}, []string{"a", "b", "d"}},
		{[]string{"a", "d"}, []string{"a", "d"}},
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"d", "b"}, []string{"a", "b", "d"}},
		{[]string{"d", "b", "a", "c"}, []string{"a", "b", "c", "d"}},
	}
	for _, c := range cases {
		n := mop.CompleteMatch(root, ordered.NewSet(c.query...))
		require.NotNil(t, n, "query %v", c.query)
		require.Equal(t, c.want, n.C.Slice(), "query %v", c.query)
	}

	require.Len(t, root.Traces(), 4)
	require.Len(t, root.Epitomes(), 6)
}

func TestScenarioBDisjointExtension(t *testing.T) {
	root := freshRoot()
	include(t, root, "a", "b", "c", "d")
	include(t, root, "a", "b", "c")
	include(t, root, "a", "b", "d")
	include(t, root, "a", "d")
	include(t, root, "e", "b", "d")

	require.NoError(t, root.VerifyTree())

	require.Nil(t, mop.CompleteMatch(root, ordered.NewSet("a", "e")))

	n := mop.CompleteMatch(root, ordered.NewSet("d", "b", "e"))
	require.NotNil(t, n)
	require.Len(t, n.C.Slice(), 3)

	require.Len(t, root.PartialMatch(ordered.NewSet("a", "d", "e")), 2)
	require.Len(t, root.Traces(), 5)
	require.Len(t, root.Epitomes(), 9)

	strengthsBefore := collectNonZeroStrengths(root)
	root.DecrementStrengths()
	strengthsAfter := collectNonZeroStrengths(root)
	require.Equal(t, len(strengthsBefore), len(strengthsAfter))
	for i := range strengthsBefore {
		require.Less(t, strengthsAfter[i], strengthsBefore[i])
	}
}

func collectNonZeroStrengths(root *mop.Mop[string]) []float64 {
	var out []float64
	var walk func(m *mop.Mop[string])
	walk = func(m *mop.Mop[string]) {
		for _, v := range []float64{m.TraceStrength(), m.EpitomeStrength(), m.UndifStrength()} {
			if v > 0 {
				out = append(out, v)
			}
		}
		a := m.Rc.Keys()
		for {
			j, ok := a.First()
			if !ok {
				break
			}
			child, indices, _ := m.GetRealWithIndices(j)
			walk(child)
			a = a.Difference(indices)
		}
	}
	walk(root)
	return out
}

func TestScenarioCEmptyAndSingleton(t *testing.T) {
	root := freshRoot()

	n := mop.CompleteMatch(root, ordered.NewSet[string]())
	require.NotNil(t, n)
	require.True(t, n.C.IsEmpty())
	require.Empty(t, root.PartialMatch(ordered.NewSet[string]()))

	include(t, root, "x")
	n = mop.CompleteMatch(root, ordered.NewSet("x"))
	require.NotNil(t, n)
	require.Equal(t, []string{"x"}, n.C.Slice())
	require.Len(t, root.Traces(), 1)
}

func TestScenarioDIdempotentReinsert(t *testing.T) {
	root := freshRoot()
	include(t, root, "a", "b", "c")
	before := nodeCount(root)
	traceCountBefore := len(root.Traces())
	epitomeCountBefore := len(root.Epitomes())

	include(t, root, "a", "b", "c")

	require.Equal(t, before, nodeCount(root))
	require.Equal(t, traceCountBefore, len(root.Traces()))
	require.Equal(t, epitomeCountBefore, len(root.Epitomes()))
}

func nodeCount(root *mop.Mop[string]) int {
	seen := map[*mop.Mop[string]]struct{}{}
	var walk func(m *mop.Mop[string])
	walk = func(m *mop.Mop[string]) {
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = struct{}{}
		for _, child := range m.MergedChildren().Keys().Slice() {
			c, ok := m.GetReal(child)
			if !ok {
				c, ok = m.GetVirtual(child)
			}
			if ok {
				walk(c)
			}
		}
	}
	walk(root)
	return len(seen)
}

func TestScenarioEOrderIndependence(t *testing.T) {
	t1 := freshRoot()
	include(t, t1, "a", "b")
	include(t, t1, "b", "c")
	include(t, t1, "a", "c")

	t2 := freshRoot()
	include(t, t2, "a", "c")
	include(t, t2, "b", "c")
	include(t, t2, "a", "b")

	queries := [][]string{
		{"a", "b"}, {"b", "c"}, {"a", "c"}, {"a"}, {"b"}, {"c"}, {"a", "b", "c"},
	}
	for _, q := range queries {
		n1 := mop.CompleteMatch(t1, ordered.NewSet(q...))
		n2 := mop.CompleteMatch(t2, ordered.NewSet(q...))
		if n1 == nil || n2 == nil {
			require.Equal(t, n1 == nil, n2 == nil, "query %v", q)
			continue
		}
		require.Equal(t, n1.C.Slice(), n2.C.Slice(), "query %v", q)
	}
}

func TestVerifyMopRejectsOverlappingIndices(t *testing.T) {
	root := freshRoot()
	child := mop.NewTrace(ordered.NewSet("a"), strength.NewDefault(false))
	root.InsertReal(ordered.NewSet("a"), child)
	root.InsertVirtual(ordered.NewSet("a"), child)
	require.Error(t, root.VerifyMop())
}
