package sim

import "math/rand"

// Sampler is the capability behind every stochastic processing-time draw.
// Deterministic tests substitute fixed-sequence samplers without touching
// dispatch logic.
type Sampler interface {
	// Sample returns a positive duration in simulated time units.
	Sample(rng *rand.Rand) float64
}

// ErlangSampler produces Erlang(k=2)-shaped durations rescaled into the
// operation's [Min, Max] range: Min at a zero draw, Max at the Erlang mean.
// Draws above the mean may exceed Max; that tail is intentional.
type ErlangSampler struct {
	Min float64
	Max float64
}

func (s *ErlangSampler) Sample(rng *rand.Rand) float64 {
	// Erlang(2, 1) is the sum of two unit exponentials; mean 2.
	erlang := rng.ExpFloat64() + rng.ExpFloat64()
	return s.Min + (s.Max-s.Min)*erlang/2
}

// UniformSampler produces uniformly distributed durations in [Min, Max).
type UniformSampler struct {
	Min float64
	Max float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.Min + (s.Max-s.Min)*rng.Float64()
}

// FixedSampler replays a fixed sequence of durations, cycling when
// exhausted. Test helper for deterministic dispatch scenarios.
type FixedSampler struct {
	Values []float64
	next   int
}

func (s *FixedSampler) Sample(_ *rand.Rand) float64 {
	if len(s.Values) == 0 {
		return 1
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
