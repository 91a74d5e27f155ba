// Package sim provides the core discrete-event simulation engine for the
// disassembly shop floor.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - order.go: Order lifecycle (pooled → released → completed/unfinished),
//     frontier advancement, corrected loads, PCAW backward scheduling
//   - event.go: Event types that drive the simulation (ReleaseReview,
//     TaskFinish, Arrival) and their fixed tie-break ranking
//   - simulator.go: The event loop, order release, station dispatch
//
// # Architecture
//
// The sim package holds the whole single-replication engine; collaborators
// live in sub-packages:
//   - sim/trace/: Emitted-event records and record-derived KPI summary
//   - sim/workload/: Stochastic order-feed generation
//
// One Simulator is one replication. Nothing in it is shared, so parallel
// replications simply construct one Simulator each.
//
// # Key Interfaces
//
// The extension points are single-method interfaces:
//   - PoolSequencer: rank pooled orders for release consideration (FCFS/EDD/CR)
//   - Dispatcher: order a station queue before dispatch (FCFS/SPT/PST)
//   - Sampler: draw stochastic processing times (substitutable in tests)
//   - Event: anything the event queue can deliver
package sim
