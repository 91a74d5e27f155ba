package sim

import "errors"

// Error taxonomy for the simulation core.
//
// EmptyQueue has no sentinel: running out of events is the normal end of a
// run, and Simulator.Run simply returns. A starvation override is likewise
// not an error; it is recovered locally and surfaced as a warning record.
var (
	// ErrConfiguration indicates an invalid configuration (unknown rule name,
	// non-positive norm or horizon, ...). Fatal at startup; no partial run.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidTime indicates an attempt to schedule an event strictly
	// before the current clock. This signals a core logic bug and is never
	// recoverable.
	ErrInvalidTime = errors.New("event scheduled before current clock")

	// ErrUnresolvedRouting indicates an operation that requires a station
	// type with zero configured instances. Fatal at load time: no dispatch
	// could ever occur.
	ErrUnresolvedRouting = errors.New("operation routed to unconfigured station type")

	// ErrPlanCycle indicates a process plan whose precedence graph is not
	// acyclic.
	ErrPlanCycle = errors.New("process plan precedence graph contains a cycle")
)
