package sim

import (
	"fmt"
	"math"
)

// OrderState represents the lifecycle state of an order. An order is in
// exactly one state at any simulated time.
type OrderState string

const (
	StatePooled     OrderState = "pooled"
	StateReleased   OrderState = "released"
	StateCompleted  OrderState = "completed"
	StateUnfinished OrderState = "unfinished"
)

// Order is one instantiation of a ProcessPlan flowing through the shop.
// The plan itself is shared and immutable; all per-order progress lives
// here, keyed by arena index.
type Order struct {
	ID          string
	Plan        *ProcessPlan
	ArrivalTime float64
	DueDate     float64
	Priority    int // 0 (highest) .. 2 (lowest)

	State       OrderState
	ReleaseTime float64
	FinishTime  float64

	// SkippedReviews counts consecutive release reviews at which this order
	// was load-blocked. Drives the starvation-avoidance safety valve.
	SkippedReviews int

	completed map[int]bool // arena indices of completed operations
	frontier  []*Task      // ready-but-undispatched tasks
	inFlight  int          // tasks dispatched but not yet finished

	plannedStart      map[int]float64 // PCAW-derived planned start per operation
	plannedCompletion map[int]float64 // PCAW per operation
}

// Task is one ready operation instance bound to its order; the unit a
// workstation dispatches. Created when all predecessors of an operation
// complete, consumed when its workstation finishes processing it.
type Task struct {
	Order *Order
	Op    *Operation

	QueueArrival float64 // time the task entered its station queue
	PlannedStart float64 // PCAW minus standard time; drives the PST rule
	PCAW         float64 // planned completion at workstation
	ProcessTime  float64 // actual duration, sampled at dispatch
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(%s/%s @ %s)", t.Order.ID, t.Op.Name, t.Op.Station)
}

// NewOrder instantiates an order from a plan. The frontier starts at the
// plan's root operations.
func NewOrder(id string, plan *ProcessPlan, arrival, dueDate float64, priority int) *Order {
	o := &Order{
		ID:          id,
		Plan:        plan,
		ArrivalTime: arrival,
		DueDate:     dueDate,
		Priority:    priority,
		State:       StatePooled,
		completed:   make(map[int]bool),
	}
	for _, root := range plan.Roots() {
		o.frontier = append(o.frontier, o.newTask(root))
	}
	return o
}

func (o *Order) newTask(opID int) *Task {
	t := &Task{Order: o, Op: &o.Plan.Ops[opID]}
	if o.plannedStart != nil {
		t.PlannedStart = o.plannedStart[opID]
		t.PCAW = o.plannedCompletion[opID]
	}
	return t
}

// ReadyTasks returns the current frontier: ready operations not yet
// handed to a workstation queue.
func (o *Order) ReadyTasks() []*Task { return o.frontier }

// TakeReadyTasks drains the frontier for delivery to station queues.
func (o *Order) TakeReadyTasks() []*Task {
	tasks := o.frontier
	o.frontier = nil
	o.inFlight += len(tasks)
	return tasks
}

// CompleteOp marks an operation complete and returns the successor tasks
// that became ready, advancing the frontier. The returned tasks are
// already accounted as in flight; the caller routes them to their
// stations.
func (o *Order) CompleteOp(opID int) []*Task {
	o.completed[opID] = true
	o.inFlight--
	var ready []*Task
	for _, s := range o.Plan.Ops[opID].Successors {
		if o.opReady(s) {
			t := o.newTask(s)
			ready = append(ready, t)
			o.inFlight++
		}
	}
	return ready
}

func (o *Order) opReady(opID int) bool {
	if o.completed[opID] {
		return false
	}
	for _, p := range o.Plan.Ops[opID].Predecessors {
		if !o.completed[p] {
			return false
		}
	}
	return true
}

// Finished reports whether every operation of the plan has completed.
func (o *Order) Finished() bool {
	return len(o.completed) == len(o.Plan.Ops)
}

// CompletedOps returns the number of completed operations.
func (o *Order) CompletedOps() int { return len(o.completed) }

// RemainingWork returns the summed standard processing time over the
// order's remaining routing. Denominator of the critical ratio.
func (o *Order) RemainingWork() float64 {
	total := 0.0
	for i := range o.Plan.Ops {
		if !o.completed[i] {
			total += o.Plan.Ops[i].StandardTime()
		}
	}
	return total
}

// CriticalRatio returns (due date - now) / remaining standard work.
// Smaller means more urgent. A fully completed order has no meaningful
// ratio; callers never ask for one.
func (o *Order) CriticalRatio(now float64) float64 {
	remaining := o.RemainingWork()
	if remaining <= 0 {
		return 0
	}
	return (o.DueDate - now) / remaining
}

// opDepth returns the 1-based distance of a remaining operation from the
// order's frontier: 1 for ready operations, 1 + max predecessor depth
// otherwise. Completed predecessors contribute depth 0.
func (o *Order) opDepth(opID int, memo map[int]int) int {
	if d, ok := memo[opID]; ok {
		return d
	}
	depth := 1
	for _, p := range o.Plan.Ops[opID].Predecessors {
		if o.completed[p] {
			continue
		}
		if d := 1 + o.opDepth(p, memo); d > depth {
			depth = d
		}
	}
	memo[opID] = depth
	return depth
}

// CorrectedLoads returns the LUMS-COR corrected workload this order
// contributes to each station type over its remaining routing. The next
// operation on a route contributes its full standard time (depth 1);
// operations further downstream are discounted by depth^exponent.
func (o *Order) CorrectedLoads(exponent float64) map[StationType]float64 {
	loads := make(map[StationType]float64)
	memo := make(map[int]int)
	for i := range o.Plan.Ops {
		if o.completed[i] {
			continue
		}
		op := &o.Plan.Ops[i]
		loads[op.Station] += op.StandardTime() / discount(o.opDepth(i, memo), exponent)
	}
	return loads
}

// ComputePlannedTimes backward-schedules the order from its due date.
// The planned completion of every terminal operation equals the due date;
// each upstream operation completes at the earliest successor's planned
// start minus the inter-operation allowance, and starts its standard time
// earlier. Idempotent: the plan graph and due date are fixed per order.
func (o *Order) ComputePlannedTimes(allowance float64) {
	if o.plannedStart != nil {
		return
	}
	n := len(o.Plan.Ops)
	o.plannedStart = make(map[int]float64, n)
	o.plannedCompletion = make(map[int]float64, n)
	// Reverse topological sweep: terminals first, then predecessors.
	order := topoOrder(o.Plan)
	for i := n - 1; i >= 0; i-- {
		opID := order[i]
		op := &o.Plan.Ops[opID]
		completion := o.DueDate
		for _, s := range op.Successors {
			if start := o.plannedStart[s] - allowance; start < completion {
				completion = start
			}
		}
		o.plannedCompletion[opID] = completion
		o.plannedStart[opID] = completion - op.StandardTime()
	}
	for _, t := range o.frontier {
		t.PlannedStart = o.plannedStart[t.Op.ID]
		t.PCAW = o.plannedCompletion[t.Op.ID]
	}
}

// PlannedStartFor returns the PCAW-derived planned start of an operation.
// Zero until ComputePlannedTimes has run.
func (o *Order) PlannedStartFor(opID int) float64 {
	return o.plannedStart[opID]
}

// topoOrder returns the plan's operations in topological order.
// Plans are validated acyclic at load, so the sweep always covers the
// whole arena.
func topoOrder(p *ProcessPlan) []int {
	indegree := make([]int, len(p.Ops))
	for i := range p.Ops {
		indegree[i] = len(p.Ops[i].Predecessors)
	}
	queue := append([]int(nil), p.Roots()...)
	order := make([]int, 0, len(p.Ops))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, s := range p.Ops[i].Successors {
			indegree[s]--
			if indegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return order
}

func discount(depth int, exponent float64) float64 {
	if depth <= 1 {
		return 1
	}
	return math.Pow(float64(depth), exponent)
}
