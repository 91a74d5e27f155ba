package trace

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds KPIs derived purely from emitted events. It is the
// external KPI aggregator's view of a run: everything here is computable
// from records alone, with no access to simulator internals.
type Summary struct {
	Arrived    int
	Released   int
	Completed  int
	Unfinished int
	Overrides  int

	MeanThroughputTime float64
	P95ThroughputTime  float64
	OverdueOrders      int

	Revenue         float64
	StationBusyTime map[string]float64 // per station type, summed task durations
	TasksCompleted  int
}

// Summarize computes a Summary from a run's emitted events.
func Summarize(st *ShopTrace) Summary {
	s := Summary{StationBusyTime: make(map[string]float64)}

	arrivals := make(map[string]Record)
	for _, r := range st.Records {
		switch r.Kind {
		case KindOrderArrived:
			s.Arrived++
			arrivals[r.OrderID] = r
		case KindOrderReleased:
			s.Released++
		case KindTaskCompleted:
			s.TasksCompleted++
			s.StationBusyTime[r.Station] += r.Duration
			s.Revenue += r.Revenue
		case KindOrderUnfinished:
			s.Unfinished++
		case KindStarvationOverride:
			s.Overrides++
		}
	}

	var throughput []float64
	for _, r := range st.Records {
		if r.Kind != KindOrderCompleted {
			continue
		}
		s.Completed++
		arr, ok := arrivals[r.OrderID]
		if !ok {
			continue
		}
		throughput = append(throughput, r.Time-arr.Time)
		if r.Time > arr.DueDate {
			s.OverdueOrders++
		}
	}
	if len(throughput) > 0 {
		s.MeanThroughputTime = stat.Mean(throughput, nil)
		sort.Float64s(throughput)
		s.P95ThroughputTime = stat.Quantile(0.95, stat.Empirical, throughput, nil)
	}
	return s
}
