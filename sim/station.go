package sim

import "fmt"

// Workstation models N identical parallel instances of one station type
// sharing a single dispatch queue. Busy and idle time are accumulated as
// instance-weighted integrals so utilization is exact regardless of how
// many instances are active at once.
type Workstation struct {
	Type      StationType
	Instances int

	Queue      *TaskQueue
	dispatcher Dispatcher

	busy        int     // instances currently processing
	lastChange  float64 // time of the last busy-count change
	TotalWork   float64 // instance-time units spent processing
	TotalIdle   float64 // instance-time units spent idle
	CostPerTime float64 // processing cost per instance-time unit
	TasksDone   int
}

// NewWorkstation creates a workstation with the given instance count.
func NewWorkstation(t StationType, instances int, dispatcher Dispatcher, costPerTime float64) *Workstation {
	return &Workstation{
		Type:        t,
		Instances:   instances,
		Queue:       &TaskQueue{},
		dispatcher:  dispatcher,
		CostPerTime: costPerTime,
	}
}

func (ws *Workstation) String() string {
	return fmt.Sprintf("Workstation(%s x%d)", ws.Type, ws.Instances)
}

// Busy returns the number of instances currently processing.
func (ws *Workstation) Busy() int { return ws.busy }

// IdleInstances returns the number of instances available for dispatch.
func (ws *Workstation) IdleInstances() int { return ws.Instances - ws.busy }

// Utilization returns the busy fraction over the elapsed horizon.
func (ws *Workstation) Utilization(horizon float64) float64 {
	if horizon <= 0 {
		return 0
	}
	return ws.TotalWork / (horizon * float64(ws.Instances))
}

// ProcessCost returns the accumulated processing cost.
func (ws *Workstation) ProcessCost() float64 {
	return ws.TotalWork * ws.CostPerTime
}

// accrue folds the interval since the last busy-count change into the
// work and idle integrals. Must be called before every busy-count change
// and once at finalization.
func (ws *Workstation) accrue(now float64) {
	dt := now - ws.lastChange
	if dt > 0 {
		ws.TotalWork += dt * float64(ws.busy)
		ws.TotalIdle += dt * float64(ws.Instances-ws.busy)
	}
	ws.lastChange = now
}

// Enqueue places a ready task on the dispatch queue. The simulator calls
// dispatchIdle afterwards; the two are separate so release can deliver a
// whole frontier before any instance starts.
func (ws *Workstation) Enqueue(t *Task, now float64) {
	t.QueueArrival = now
	ws.Queue.Enqueue(t)
}

// nextTask reorders the queue per the active dispatching rule and pops
// the front. Returns nil when the queue is empty.
func (ws *Workstation) nextTask(now float64) *Task {
	if ws.Queue.Len() == 0 {
		return nil
	}
	ws.Queue.Reorder(func(tasks []*Task) {
		ws.dispatcher.OrderQueue(tasks, now)
	})
	return ws.Queue.Dequeue()
}

// startTask marks one instance busy.
func (ws *Workstation) startTask(now float64) {
	ws.accrue(now)
	ws.busy++
}

// endTask frees one instance and counts the completion.
func (ws *Workstation) endTask(now float64) {
	ws.accrue(now)
	ws.busy--
	ws.TasksDone++
}

// Finalize closes the work/idle integrals at the end of a run.
func (ws *Workstation) Finalize(now float64) {
	ws.accrue(now)
}
