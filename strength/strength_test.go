package strength_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordt-go/rdt/strength"
)

func TestNewZeroUnlessIncremented(t *testing.T) {
	require.Equal(t, 0.0, strength.NewDefault(false).Value())
	require.Greater(t, strength.NewDefault(true).Value(), 0.0)
}

func TestIncreaseMonotonicConvergesToOne(t *testing.T) {
	s := strength.NewDefault(false)
	prev := s.Value()
	for i := 0; i < 500; i++ {
		s = s.Increase().(strength.Default)
		require.GreaterOrEqual(t, s.Value(), prev)
		require.LessOrEqual(t, s.Value(), 1.0)
		prev = s.Value()
	}
	require.InDelta(t, 1.0, s.Value(), 1e-6)
}

func TestDecreaseMonotonicConvergesToZero(t *testing.T) {
	s := strength.NewDefault(true)
	for i := 0; i < 10; i++ {
		s = s.Increase().(strength.Default)
	}
	prev := s.Value()
	for i := 0; i < 500; i++ {
		s = s.Decrease().(strength.Default)
		require.LessOrEqual(t, s.Value(), prev)
		require.GreaterOrEqual(t, s.Value(), 0.0)
		prev = s.Value()
	}
	require.InDelta(t, 0.0, s.Value(), 1e-6)
}

func TestNewRestartsFromZero(t *testing.T) {
	s := strength.NewDefault(true)
	reset := s.New(false)
	require.Equal(t, 0.0, reset.Value())
}
