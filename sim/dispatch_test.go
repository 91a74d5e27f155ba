package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func taskWith(t *testing.T, orderID string, priority int, std float64, plannedStart, queueArrival float64) *Task {
	t.Helper()
	plan := singleOpPlan(t, "p-"+orderID, "A", std)
	o := NewOrder(orderID, plan, 0, 100, priority)
	task := o.ReadyTasks()[0]
	task.PlannedStart = plannedStart
	task.QueueArrival = queueArrival
	return task
}

func TestFCFSDispatcher_EarliestQueueArrivalFirst(t *testing.T) {
	a := taskWith(t, "A", 1, 5, 0, 8)
	b := taskWith(t, "B", 1, 5, 0, 3)
	tasks := []*Task{a, b}

	FCFSDispatcher{}.OrderQueue(tasks, 10)

	assert.Equal(t, []*Task{b, a}, tasks)
}

func TestSPTDispatcher_SmallestExpectedTimeFirst(t *testing.T) {
	// GIVEN tasks with standard times 6 and 2, the longer one queued first
	long := taskWith(t, "A", 1, 6, 0, 1)
	short := taskWith(t, "B", 1, 2, 0, 5)
	tasks := []*Task{long, short}

	SPTDispatcher{}.OrderQueue(tasks, 10)

	assert.Equal(t, []*Task{short, long}, tasks)
}

func TestSPTDispatcher_TiesBrokenByQueueArrival(t *testing.T) {
	a := taskWith(t, "A", 1, 4, 0, 7)
	b := taskWith(t, "B", 1, 4, 0, 2)
	tasks := []*Task{a, b}

	SPTDispatcher{}.OrderQueue(tasks, 10)

	assert.Equal(t, []*Task{b, a}, tasks)
}

func TestPSTDispatcher_SmallestPlannedStartFirst(t *testing.T) {
	// GIVEN two ready tasks with PCAW-derived planned starts 12 and 8
	later := taskWith(t, "A", 1, 3, 12, 0)
	sooner := taskWith(t, "B", 1, 3, 8, 1)
	tasks := []*Task{later, sooner}

	// WHEN the queue is ordered by PST
	PSTDispatcher{}.OrderQueue(tasks, 10)

	// THEN the task with planned start 8 dispatches first
	assert.Equal(t, []*Task{sooner, later}, tasks)
}

func TestDispatchers_PriorityClassDominatesRuleKey(t *testing.T) {
	hot := taskWith(t, "hot", 0, 9, 99, 9)
	cold := taskWith(t, "cold", 2, 1, 1, 0)

	for _, rule := range []Dispatcher{FCFSDispatcher{}, SPTDispatcher{}, PSTDispatcher{}} {
		tasks := []*Task{cold, hot}
		rule.OrderQueue(tasks, 10)
		assert.Equal(t, hot, tasks[0], "rule %T", rule)
	}
}

func TestNewDispatcher_KnownNames(t *testing.T) {
	assert.IsType(t, FCFSDispatcher{}, NewDispatcher("FCFS"))
	assert.IsType(t, FCFSDispatcher{}, NewDispatcher(""))
	assert.IsType(t, SPTDispatcher{}, NewDispatcher("SPT"))
	assert.IsType(t, PSTDispatcher{}, NewDispatcher("PST"))
	assert.Panics(t, func() { NewDispatcher("LIFO") })
}

func TestTaskQueue_PeekAndDequeue(t *testing.T) {
	// GIVEN a queue with two tasks
	tq := &TaskQueue{}
	a := taskWith(t, "A", 1, 1, 0, 0)
	b := taskWith(t, "B", 1, 1, 0, 1)
	tq.Enqueue(a)
	tq.Enqueue(b)

	// THEN Peek returns the front without removing it
	assert.Equal(t, a, tq.Peek())
	assert.Equal(t, 2, tq.Len())

	// AND Dequeue removes front to back, returning nil when empty
	assert.Equal(t, a, tq.Dequeue())
	assert.Equal(t, b, tq.Dequeue())
	assert.Nil(t, tq.Dequeue())
}
