package mop

// DecrementStrengths applies one decay step to m's three strengths, then
// recurses into every real child exactly once, regardless of how many
// indices share it (§4.7). Virtual edges are not walked: they are
// back-pointers into nodes already reachable via some real path, so a
// real-only traversal still visits every node in the tree.
func (m *Mop[T]) DecrementStrengths() {
	m.traceStrength = m.traceStrength.Decrease()
	m.epitomeStrength = m.epitomeStrength.Decrease()
	m.undifStrength = m.undifStrength.Decrease()

	a := m.Rc.Keys()
	for {
		j, ok := a.First()
		if !ok {
			break
		}
		child, indices, _ := m.GetRealWithIndices(j)
		child.DecrementStrengths()
		a = a.Difference(indices)
	}
}
