package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulated time units) and an Execute method
// that advances simulation state when invoked.
//
// Events at the same timestamp execute in Rank order (lower first), and
// events with equal rank execute in insertion order. This fixed ranking is
// what makes two runs with identical inputs and seeds bit-for-bit identical.
type Event interface {
	Timestamp() float64
	Rank() int
	Execute(*Simulator)
}

// Event rank constants. Release reviews run before task completions,
// task completions before arrivals.
const (
	rankReleaseReview = iota
	rankTaskFinish
	rankArrival
)

// ArrivalEvent represents the arrival of a new order at the shop.
// The order enters the pre-shop pool; it is not released yet.
type ArrivalEvent struct {
	time  float64
	Order *Order
}

func (e *ArrivalEvent) Timestamp() float64 { return e.time }
func (e *ArrivalEvent) Rank() int          { return rankArrival }

// Execute admits the arriving order into the pre-shop pool.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t %8.2f] << Arrival: order %s", e.time, e.Order.ID)
	sim.admitOrder(e.Order, e.time)
}

// ReleaseReviewEvent represents one periodic LUMS-COR release review.
// It re-schedules itself at the configured review interval for as long as
// there is pending work.
type ReleaseReviewEvent struct {
	time float64
}

func (e *ReleaseReviewEvent) Timestamp() float64 { return e.time }
func (e *ReleaseReviewEvent) Rank() int          { return rankReleaseReview }

func (e *ReleaseReviewEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t %8.2f] << ReleaseReview: %d orders pooled", e.time, sim.Pool.Len())
	sim.Release.Review(sim, e.time)
	if sim.pendingWork() {
		sim.schedule(&ReleaseReviewEvent{time: e.time + sim.Config.ReviewInterval})
	}
}

// TaskFinishEvent represents a workstation instance finishing a task.
// Completion advances the owning order's frontier and frees the instance
// for the next dispatch.
type TaskFinishEvent struct {
	time    float64
	Station *Workstation
	Task    *Task
}

func (e *TaskFinishEvent) Timestamp() float64 { return e.time }
func (e *TaskFinishEvent) Rank() int          { return rankTaskFinish }

func (e *TaskFinishEvent) Execute(sim *Simulator) {
	logrus.Debugf("[t %8.2f] << TaskFinish: op %s of order %s at station %s",
		e.time, e.Task.Op.Name, e.Task.Order.ID, e.Station.Type)
	sim.finishTask(e.Station, e.Task, e.time)
}
