package workload

import (
	"fmt"
	"math/rand"

	"github.com/shopfloor-sim/shopfloor-sim/sim"
)

// Generator produces the order feed for one simulation run. Plans are
// picked uniformly from the catalog, due dates are a uniform slack past
// the arrival time, priorities are a weighted three-way draw.
type Generator struct {
	Spec    *Spec
	Plans   []*sim.ProcessPlan
	Arrival ArrivalSampler
}

// NewGenerator builds a generator for a validated spec and plan catalog.
func NewGenerator(spec *Spec, plans []*sim.ProcessPlan) (*Generator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("no process plans to generate orders from")
	}
	return &Generator{
		Spec:    spec,
		Plans:   plans,
		Arrival: &PoissonArrivals{Mean: spec.InterArrivalMean},
	}, nil
}

// Generate produces the full order feed in arrival-time order. All draws
// come from the given RNG stream, so a fixed seed reproduces the feed
// exactly.
func (g *Generator) Generate(rng *rand.Rand) []*sim.Order {
	orders := make([]*sim.Order, 0, g.Spec.TotalOrders)
	arrival := 0.0
	for i := 0; i < g.Spec.TotalOrders; i++ {
		plan := g.Plans[rng.Intn(len(g.Plans))]
		due := arrival + g.Spec.DueDateSlackMin +
			(g.Spec.DueDateSlackMax-g.Spec.DueDateSlackMin)*rng.Float64()
		priority := weightedPriority(rng, g.Spec.PriorityWeights)
		id := fmt.Sprintf("O-%d", i+1)
		orders = append(orders, sim.NewOrder(id, plan, arrival, due, priority))
		arrival += g.Arrival.SampleIAT(rng)
	}
	return orders
}

// weightedPriority draws class 0, 1 or 2 with the given weights.
func weightedPriority(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	u := rng.Float64() * total
	for i, w := range weights {
		if u < w {
			return i
		}
		u -= w
	}
	return len(weights) - 1
}
