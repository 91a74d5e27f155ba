// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/shopfloor-sim/shopfloor-sim/sim/trace"
)

// eventEntry pairs an event with its insertion sequence number, the final
// tie-break key.
type eventEntry struct {
	ev  Event
	seq int64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// then event rank (release reviews before task completions before
// arrivals), then insertion sequence. See the canonical Golang example:
// https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	if eq[i].ev.Rank() != eq[j].ev.Rank() {
		return eq[i].ev.Rank() < eq[j].ev.Rank()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(eventEntry))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, shop state,
// and the event loop. One Simulator is one replication: nothing here is
// shared, so independent replications may run on separate goroutines as
// long as each owns its own instance.
type Simulator struct {
	Clock   float64
	Horizon float64
	Config  *Config

	EventQueue EventQueue
	seq        int64

	Pool      *PreShopPool
	Release   *ReleaseControl
	Stations  map[StationType]*Workstation
	Warehouse *Warehouse
	Metrics   *Metrics
	Trace     *trace.ShopTrace
	RNG       *PartitionedRNG

	// Orders holds every injected order for conservation accounting.
	Orders []*Order

	arrivalsPending int
	activeOrders    int // released and not yet completed
}

// NewSimulator validates the configuration and plan routing and builds a
// fully isolated simulation instance. The first release review is
// scheduled one review interval in.
func NewSimulator(cfg *Config, plans []*ProcessPlan) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range plans {
		if err := p.CheckRouting(cfg.Stations); err != nil {
			return nil, err
		}
	}

	dispatcher := NewDispatcher(cfg.DispatchRule)
	stations := make(map[StationType]*Workstation, len(cfg.Stations))
	for t, n := range cfg.Stations {
		stations[t] = NewWorkstation(t, n, dispatcher, cfg.CostPerTimeUnit)
	}

	s := &Simulator{
		Horizon:    cfg.Horizon,
		Config:     cfg,
		EventQueue: make(EventQueue, 0),
		Pool:       &PreShopPool{},
		Release:    NewReleaseControl(cfg),
		Stations:   stations,
		Warehouse:  NewWarehouse(),
		Metrics:    NewMetrics(),
		Trace:      trace.New(),
		RNG:        NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}
	s.schedule(&ReleaseReviewEvent{time: cfg.ReviewInterval})
	return s, nil
}

// Schedule pushes an event into the event queue. Fails with
// ErrInvalidTime when the event lies strictly before the current clock.
func (sim *Simulator) Schedule(ev Event) error {
	if ev.Timestamp() < sim.Clock {
		return fmt.Errorf("%w: event at %v, clock at %v", ErrInvalidTime, ev.Timestamp(), sim.Clock)
	}
	heap.Push(&sim.EventQueue, eventEntry{ev: ev, seq: sim.seq})
	sim.seq++
	return nil
}

// schedule is the internal variant for events produced by handlers.
// A time regression here is a core logic bug, not a recoverable input
// error, hence the panic.
func (sim *Simulator) schedule(ev Event) {
	if err := sim.Schedule(ev); err != nil {
		panic(err)
	}
}

// InjectArrival schedules an order's arrival at its arrival time. The
// order feed must be supplied before or during the run in arrival-time
// order relative to the current clock.
func (sim *Simulator) InjectArrival(o *Order) error {
	if err := sim.Schedule(&ArrivalEvent{time: o.ArrivalTime, Order: o}); err != nil {
		return err
	}
	sim.Orders = append(sim.Orders, o)
	sim.arrivalsPending++
	sim.Metrics.GeneratedOrders++
	return nil
}

// Run pops and executes events in clock order until the queue empties
// (normal termination) or the horizon is reached, then finalizes the run.
// In-flight orders are marked unfinished at finalization.
func (sim *Simulator) Run() {
	for len(sim.EventQueue) > 0 {
		entry := heap.Pop(&sim.EventQueue).(eventEntry)
		if entry.ev.Timestamp() > sim.Horizon {
			sim.Clock = sim.Horizon
			break
		}
		sim.Clock = entry.ev.Timestamp()
		entry.ev.Execute(sim)
	}
	sim.finalize()
	logrus.Infof("[t %8.2f] simulation ended (run %s)", sim.Metrics.SimEndTime, sim.Trace.RunID)
}

// pendingWork reports whether anything can still happen: arrivals not yet
// admitted, pooled orders, or released orders still on the floor.
func (sim *Simulator) pendingWork() bool {
	return sim.arrivalsPending > 0 || sim.Pool.Len() > 0 || sim.activeOrders > 0
}

// admitOrder moves an arriving order into the pre-shop pool.
func (sim *Simulator) admitOrder(o *Order, now float64) {
	sim.arrivalsPending--
	sim.Pool.Admit(o)
	sim.Metrics.ArrivedOrders++
	sim.Trace.Add(trace.Record{
		Time:    now,
		Kind:    trace.KindOrderArrived,
		OrderID: o.ID,
		DueDate: o.DueDate,
	})
}

// releaseOrder moves an order out of the pool onto the shop floor and
// delivers its ready tasks to their station queues.
func (sim *Simulator) releaseOrder(o *Order, now float64, how string) {
	sim.Pool.Remove(o)
	o.State = StateReleased
	o.ReleaseTime = now
	sim.activeOrders++
	sim.Metrics.ReleasedOrders++
	sim.Trace.Add(trace.Record{
		Time:    now,
		Kind:    trace.KindOrderReleased,
		OrderID: o.ID,
		Detail:  how,
	})
	logrus.Debugf("[t %8.2f] order %s released (%s)", now, o.ID, how)

	touched := sim.routeTasks(o.TakeReadyTasks(), now)
	for _, ws := range touched {
		sim.dispatchStation(ws, now)
	}
}

// routeTasks enqueues ready tasks at their required stations and returns
// the touched stations in deterministic order.
func (sim *Simulator) routeTasks(tasks []*Task, now float64) []*Workstation {
	seen := make(map[StationType]bool)
	var touched []*Workstation
	for _, t := range tasks {
		ws := sim.Stations[t.Op.Station]
		ws.Enqueue(t, now)
		if !seen[ws.Type] {
			seen[ws.Type] = true
			touched = append(touched, ws)
		}
	}
	sort.Slice(touched, func(i, j int) bool { return touched[i].Type < touched[j].Type })
	return touched
}

// dispatchStation starts tasks on every idle instance of a station while
// its queue has work. Processing time is drawn from the operation's
// distribution at dispatch time, from the station's own RNG stream.
func (sim *Simulator) dispatchStation(ws *Workstation, now float64) {
	for ws.IdleInstances() > 0 {
		t := ws.nextTask(now)
		if t == nil {
			return
		}
		rng := sim.RNG.ForSubsystem(SubsystemStation(ws.Type))
		t.ProcessTime = t.Op.sampler.Sample(rng)
		ws.startTask(now)
		sim.Trace.Add(trace.Record{
			Time:     now,
			Kind:     trace.KindTaskDispatched,
			OrderID:  t.Order.ID,
			Task:     t.Op.Name,
			Station:  string(ws.Type),
			Duration: t.ProcessTime,
		})
		logrus.Debugf("[t %8.2f] station %s starts op %s of order %s (pt %.2f)",
			now, ws.Type, t.Op.Name, t.Order.ID, t.ProcessTime)
		sim.schedule(&TaskFinishEvent{time: now + t.ProcessTime, Station: ws, Task: t})
	}
}

// finishTask handles a task completion: frees the instance, records
// recovered components, advances the order's frontier, and dispatches
// follow-up work.
func (sim *Simulator) finishTask(ws *Workstation, t *Task, now float64) {
	ws.endTask(now)

	revenue := 0.0
	if t.Op.Component != "" {
		revenue = t.Op.Revenue
		sim.Warehouse.AddItem(t.Op.Component, t.Order.ID, t.Op.Revenue, now)
		sim.Metrics.Revenue += t.Op.Revenue
	}
	sim.Trace.Add(trace.Record{
		Time:     now,
		Kind:     trace.KindTaskCompleted,
		OrderID:  t.Order.ID,
		Task:     t.Op.Name,
		Station:  string(ws.Type),
		Duration: t.ProcessTime,
		Revenue:  revenue,
	})

	newlyReady := t.Order.CompleteOp(t.Op.ID)
	touched := sim.routeTasks(newlyReady, now)

	if t.Order.Finished() {
		o := t.Order
		o.State = StateCompleted
		o.FinishTime = now
		sim.activeOrders--
		sim.Warehouse.AddOrder(o)
		sim.Metrics.RecordCompletion(o, now)
		sim.Trace.Add(trace.Record{
			Time:    now,
			Kind:    trace.KindOrderCompleted,
			OrderID: o.ID,
		})
		logrus.Debugf("[t %8.2f] order %s completed (due %.2f)", now, o.ID, o.DueDate)
	}

	for _, other := range touched {
		if other != ws {
			sim.dispatchStation(other, now)
		}
	}
	sim.dispatchStation(ws, now)
}

// finalize closes the run: station time integrals are settled and every
// released-but-incomplete order is reported as unfinished. Pooled orders
// stay pooled; together the four states conserve the generated count.
func (sim *Simulator) finalize() {
	end := sim.Clock
	if end > sim.Horizon {
		end = sim.Horizon
	}
	sim.Metrics.SimEndTime = end
	for _, ws := range sim.Stations {
		ws.Finalize(end)
	}
	for _, o := range sim.Orders {
		if o.State != StateReleased {
			continue
		}
		o.State = StateUnfinished
		sim.activeOrders--
		sim.Metrics.UnfinishedOrders++
		sim.Trace.Add(trace.Record{
			Time:    end,
			Kind:    trace.KindOrderUnfinished,
			OrderID: o.ID,
			Detail:  fmt.Sprintf("%d/%d operations done", o.CompletedOps(), len(o.Plan.Ops)),
		})
	}
	sim.Metrics.PooledAtEnd = sim.Pool.Len()
}
