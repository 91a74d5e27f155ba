// Package trace provides the emitted-event log of a simulation run.
// This package has no dependencies on sim/ — it stores pure data types, so
// external KPI, logging and visualization collaborators can consume the
// records without touching simulator state.
package trace

// Kind names one emitted event type.
type Kind string

const (
	KindOrderArrived       Kind = "order-arrived"
	KindOrderReleased      Kind = "order-released"
	KindTaskDispatched     Kind = "task-dispatched"
	KindTaskCompleted      Kind = "task-completed"
	KindOrderCompleted     Kind = "order-completed"
	KindOrderUnfinished    Kind = "order-unfinished"
	KindStarvationOverride Kind = "starvation-override"
)

// Record is one timestamped emitted event. Only the fields relevant to
// the Kind are set; the rest stay zero.
type Record struct {
	Time    float64
	Kind    Kind
	OrderID string
	Task    string
	Station string

	DueDate  float64 // order-arrived
	Duration float64 // task-dispatched / task-completed: processing time
	Revenue  float64 // task-completed: recovered component revenue
	Detail   string
}
