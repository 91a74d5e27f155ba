package sim

import (
	"fmt"
	"sort"
)

// Dispatcher selects the next queued task at an idle workstation instance
// by reordering the station queue. Implementations sort in-place with
// sort.SliceStable; the station then pops the front. Priority class
// dominates every rule key, ties fall back to queue-arrival time and IDs
// for determinism.
type Dispatcher interface {
	OrderQueue(tasks []*Task, now float64)
}

// FCFSDispatcher dispatches the task with the earliest queue arrival.
type FCFSDispatcher struct{}

func (FCFSDispatcher) OrderQueue(tasks []*Task, _ float64) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Order.Priority != tasks[j].Order.Priority {
			return tasks[i].Order.Priority < tasks[j].Order.Priority
		}
		return taskArrivalLess(tasks[i], tasks[j])
	})
}

// SPTDispatcher dispatches the task with the smallest expected processing
// time, ties broken by queue arrival.
type SPTDispatcher struct{}

func (SPTDispatcher) OrderQueue(tasks []*Task, _ float64) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Order.Priority != tasks[j].Order.Priority {
			return tasks[i].Order.Priority < tasks[j].Order.Priority
		}
		si, sj := tasks[i].Op.StandardTime(), tasks[j].Op.StandardTime()
		if si != sj {
			return si < sj
		}
		return taskArrivalLess(tasks[i], tasks[j])
	})
}

// PSTDispatcher dispatches the task with the smallest PCAW-derived planned
// start time, ties broken by queue arrival. Planned starts come from the
// release control's backward scheduling pass.
type PSTDispatcher struct{}

func (PSTDispatcher) OrderQueue(tasks []*Task, _ float64) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Order.Priority != tasks[j].Order.Priority {
			return tasks[i].Order.Priority < tasks[j].Order.Priority
		}
		if tasks[i].PlannedStart != tasks[j].PlannedStart {
			return tasks[i].PlannedStart < tasks[j].PlannedStart
		}
		return taskArrivalLess(tasks[i], tasks[j])
	})
}

func taskArrivalLess(a, b *Task) bool {
	if a.QueueArrival != b.QueueArrival {
		return a.QueueArrival < b.QueueArrival
	}
	if a.Order.ID != b.Order.ID {
		return a.Order.ID < b.Order.ID
	}
	return a.Op.ID < b.Op.ID
}

// validDispatchRules is the set of recognized dispatching rule names.
var validDispatchRules = map[string]bool{"": true, "FCFS": true, "SPT": true, "PST": true}

// IsValidDispatchRule returns true if name is a recognized dispatching rule.
func IsValidDispatchRule(name string) bool { return validDispatchRules[name] }

// NewDispatcher creates a Dispatcher by name. Empty string defaults to
// FCFS. Panics on unrecognized names; Config.Validate rejects them first.
func NewDispatcher(name string) Dispatcher {
	switch name {
	case "", "FCFS":
		return FCFSDispatcher{}
	case "SPT":
		return SPTDispatcher{}
	case "PST":
		return PSTDispatcher{}
	default:
		panic(fmt.Sprintf("unknown dispatching rule %q", name))
	}
}
