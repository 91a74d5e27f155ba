package sim

import "testing"

// testConfig returns a valid baseline config for tests.
func testConfig() *Config {
	return &Config{
		PoolRule:              "FCFS",
		DispatchRule:          "FCFS",
		WorkloadNorm:          100,
		ReviewInterval:        4,
		Horizon:               100,
		Seed:                  7,
		Stations:              map[StationType]int{"A": 1, "B": 1, "C": 1},
		PlannedStartAllowance: 0.2,
		CorrectionExponent:    1,
		CostPerTimeUnit:       10,
	}
}

// linePlan builds a chain T1 -> T2 -> ... with fixed (min == max)
// processing times, one per station in order.
func linePlan(t *testing.T, name string, stations []string, times []float64) *ProcessPlan {
	t.Helper()
	if len(stations) != len(times) {
		t.Fatalf("linePlan: %d stations but %d times", len(stations), len(times))
	}
	spec := planSpec{Name: name}
	for i, st := range stations {
		op := opSpec{
			Name:    opName(i),
			Station: st,
			TimeMin: times[i],
			TimeMax: times[i],
		}
		if i > 0 {
			op.Predecessors = []string{opName(i - 1)}
		}
		spec.Operations = append(spec.Operations, op)
	}
	plan, err := buildPlan(spec)
	if err != nil {
		t.Fatalf("linePlan: %v", err)
	}
	return plan
}

// forkPlan builds the reference disassembly shape:
//
//	T1 -> T2
//	T1 -> T3 -> T4
//	      T3 -> T5
//
// with fixed unit-area times per op and components on the leaves.
func forkPlan(t *testing.T) *ProcessPlan {
	t.Helper()
	plan, err := buildPlan(planSpec{
		Name: "fork",
		Operations: []opSpec{
			{Name: "T1", Station: "A", TimeMin: 2, TimeMax: 2},
			{Name: "T2", Station: "B", TimeMin: 1, TimeMax: 1, Predecessors: []string{"T1"}, Component: "housing", Revenue: 4},
			{Name: "T3", Station: "C", TimeMin: 1.5, TimeMax: 1.5, Predecessors: []string{"T1"}},
			{Name: "T4", Station: "A", TimeMin: 1, TimeMax: 1, Predecessors: []string{"T3"}, Component: "motor", Revenue: 9},
			{Name: "T5", Station: "B", TimeMin: 0.5, TimeMax: 0.5, Predecessors: []string{"T3"}, Component: "board", Revenue: 6.5},
		},
	})
	if err != nil {
		t.Fatalf("forkPlan: %v", err)
	}
	return plan
}

func opName(i int) string {
	return "T" + string(rune('1'+i))
}

// singleOpPlan builds a one-operation plan with fixed duration. Useful for
// exact remaining-work values in sequencing tests.
func singleOpPlan(t *testing.T, name, station string, duration float64) *ProcessPlan {
	t.Helper()
	plan, err := buildPlan(planSpec{
		Name: name,
		Operations: []opSpec{
			{Name: "T1", Station: station, TimeMin: duration, TimeMax: duration},
		},
	})
	if err != nil {
		t.Fatalf("singleOpPlan: %v", err)
	}
	return plan
}
