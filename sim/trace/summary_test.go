package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_CountsAndThroughput(t *testing.T) {
	// GIVEN a trace with two completed orders (throughput 10 and 20),
	// one of them overdue, and one order cut off unfinished
	st := New()
	st.Add(Record{Time: 0, Kind: KindOrderArrived, OrderID: "O-1", DueDate: 15})
	st.Add(Record{Time: 1, Kind: KindOrderArrived, OrderID: "O-2", DueDate: 50})
	st.Add(Record{Time: 2, Kind: KindOrderArrived, OrderID: "O-3", DueDate: 60})
	st.Add(Record{Time: 4, Kind: KindOrderReleased, OrderID: "O-1"})
	st.Add(Record{Time: 4, Kind: KindOrderReleased, OrderID: "O-2"})
	st.Add(Record{Time: 8, Kind: KindOrderReleased, OrderID: "O-3"})
	st.Add(Record{Time: 10, Kind: KindOrderCompleted, OrderID: "O-1"}) // due 15, on time
	st.Add(Record{Time: 21, Kind: KindOrderCompleted, OrderID: "O-2"})
	st.Add(Record{Time: 100, Kind: KindOrderUnfinished, OrderID: "O-3"})

	// WHEN the trace is summarized
	s := Summarize(st)

	// THEN counts and KPIs follow from the records alone
	assert.Equal(t, 3, s.Arrived)
	assert.Equal(t, 3, s.Released)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Unfinished)
	assert.Equal(t, 0, s.OverdueOrders)
	assert.InDelta(t, 15.0, s.MeanThroughputTime, 1e-9)
}

func TestSummarize_OverdueComparesCompletionToDueDate(t *testing.T) {
	st := New()
	st.Add(Record{Time: 0, Kind: KindOrderArrived, OrderID: "O-1", DueDate: 5})
	st.Add(Record{Time: 9, Kind: KindOrderCompleted, OrderID: "O-1"})

	s := Summarize(st)

	assert.Equal(t, 1, s.OverdueOrders)
}

func TestSummarize_BusyTimeAndRevenuePerStation(t *testing.T) {
	st := New()
	st.Add(Record{Kind: KindTaskCompleted, Station: "A", Duration: 2, Revenue: 4})
	st.Add(Record{Kind: KindTaskCompleted, Station: "A", Duration: 3})
	st.Add(Record{Kind: KindTaskCompleted, Station: "B", Duration: 1.5, Revenue: 6.5})

	s := Summarize(st)

	assert.Equal(t, 3, s.TasksCompleted)
	assert.InDelta(t, 5.0, s.StationBusyTime["A"], 1e-9)
	assert.InDelta(t, 1.5, s.StationBusyTime["B"], 1e-9)
	assert.InDelta(t, 10.5, s.Revenue, 1e-9)
}

func TestSummarize_CountsOverrides(t *testing.T) {
	st := New()
	st.Add(Record{Kind: KindStarvationOverride, OrderID: "O-1"})

	assert.Equal(t, 1, Summarize(st).Overrides)
}

func TestSummarize_EmptyTrace(t *testing.T) {
	s := Summarize(New())

	assert.Zero(t, s.Arrived)
	assert.Zero(t, s.MeanThroughputTime)
	assert.Zero(t, s.P95ThroughputTime)
}
