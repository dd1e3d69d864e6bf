// Package strength implements the decaying scalar strengths carried by
// every Mop node, as a pluggable Model the way the teacher's trie engine is
// parameterized over a common.CommitmentModel.
package strength

// Model is a decaying scalar in [0,1]. Increase and Decrease must be
// monotonic: Increase never lowers Value, Decrease never raises it, and
// both stay within [0,1]. Implementations are immutable value types;
// Increase/Decrease return the updated value rather than mutating in
// place, matching the Cell<S>-via-.set() pattern in the source this spec
// was distilled from.
type Model interface {
	// New returns the zero strength, optionally pre-incremented once.
	New(incr bool) Model
	// Value returns the current scalar value.
	Value() float64
	// Increase returns the strength after one increase step.
	Increase() Model
	// Decrease returns the strength after one decrease step.
	Decrease() Model
}

// DefaultDecayRate is the reference decay rate from spec §4.2.
const DefaultDecayRate = 0.05

// Default is the reference Strength implementation: increase maps
// v <- v + (1-v)*rate, decrease maps v <- v*(1-rate).
type Default struct {
	value float64
	rate  float64
}

// NewDefault returns the zero Default strength using DefaultDecayRate,
// optionally pre-incremented once.
func NewDefault(incr bool) Default {
	return NewDefaultWithRate(incr, DefaultDecayRate)
}

// NewDefaultWithRate is NewDefault with an explicit decay rate, for callers
// that want a different convergence speed while keeping the same formula.
func NewDefaultWithRate(incr bool, rate float64) Default {
	d := Default{rate: rate}
	if incr {
		d = d.Increase().(Default)
	}
	return d
}

func (d Default) New(incr bool) Model {
	return NewDefaultWithRate(incr, d.rate)
}

func (d Default) Value() float64 {
	return d.value
}

func (d Default) Increase() Model {
	d.value += (1 - d.value) * d.rate
	return d
}

func (d Default) Decrease() Model {
	d.value *= 1 - d.rate
	return d
}
