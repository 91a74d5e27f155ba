// Tracks run-wide counters for final reporting: order conservation,
// throughput time, lateness, and the station cost side of the ledger.

package sim

import (
	"fmt"
	"sort"
)

// Metrics aggregates statistics about one simulation run.
type Metrics struct {
	GeneratedOrders int // orders injected into the run
	ArrivedOrders   int // orders that reached the pool before the horizon
	ReleasedOrders  int
	CompletedOrders int
	UnfinishedOrders int // released but incomplete at run end
	PooledAtEnd      int // never released

	OverdueOrders     int
	ThroughputTimeSum float64 // sum of (completion - arrival) over completed orders
	TardinessSum      float64 // sum of max(0, completion - due) over completed orders

	Revenue    float64
	SimEndTime float64
}

// NewMetrics creates a zeroed Metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordCompletion folds one completed order into the aggregates.
func (m *Metrics) RecordCompletion(o *Order, now float64) {
	m.CompletedOrders++
	m.ThroughputTimeSum += now - o.ArrivalTime
	if now > o.DueDate {
		m.OverdueOrders++
		m.TardinessSum += now - o.DueDate
	}
}

// MeanThroughputTime returns the average time from arrival to completion.
func (m *Metrics) MeanThroughputTime() float64 {
	if m.CompletedOrders == 0 {
		return 0
	}
	return m.ThroughputTimeSum / float64(m.CompletedOrders)
}

// Print displays aggregated metrics at the end of the simulation,
// including per-station utilization and the revenue/cost balance.
func (m *Metrics) Print(stations map[StationType]*Workstation) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Orders generated     : %d\n", m.GeneratedOrders)
	fmt.Printf("Orders arrived       : %d\n", m.ArrivedOrders)
	fmt.Printf("Orders released      : %d\n", m.ReleasedOrders)
	fmt.Printf("Orders completed     : %d\n", m.CompletedOrders)
	fmt.Printf("Orders unfinished    : %d\n", m.UnfinishedOrders)
	fmt.Printf("Orders still pooled  : %d\n", m.PooledAtEnd)
	fmt.Printf("Overdue orders       : %d\n", m.OverdueOrders)
	if m.CompletedOrders > 0 {
		fmt.Printf("Mean throughput time : %.2f\n", m.MeanThroughputTime())
		fmt.Printf("Mean tardiness       : %.2f\n", m.TardinessSum/float64(m.CompletedOrders))
	}

	types := make([]StationType, 0, len(stations))
	for t := range stations {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	cost := 0.0
	for _, t := range types {
		ws := stations[t]
		cost += ws.ProcessCost()
		fmt.Printf("Station %-3s          : work %8.2f  idle %8.2f  utilization %5.1f%%  tasks %d\n",
			ws.Type, ws.TotalWork, ws.TotalIdle, 100*ws.Utilization(m.SimEndTime), ws.TasksDone)
	}
	fmt.Printf("Revenue              : %.2f\n", m.Revenue)
	fmt.Printf("Process cost         : %.2f\n", cost)
	fmt.Printf("Net profit           : %.2f\n", m.Revenue-cost)
}
