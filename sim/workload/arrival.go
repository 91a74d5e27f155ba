package workload

import "math/rand"

// ArrivalSampler generates inter-arrival times for the order feed.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in simulated time
	// units. Always positive.
	SampleIAT(rng *rand.Rand) float64
}

// PoissonArrivals generates exponentially distributed inter-arrival times
// (a Poisson arrival process).
type PoissonArrivals struct {
	Mean float64
}

func (s *PoissonArrivals) SampleIAT(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.Mean
}

// FixedArrivals replays a constant inter-arrival time. Test helper.
type FixedArrivals struct {
	IAT float64
}

func (s *FixedArrivals) SampleIAT(_ *rand.Rand) float64 {
	return s.IAT
}
