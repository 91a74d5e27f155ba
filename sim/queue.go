// Implements the TaskQueue, which holds the ready tasks waiting at one
// workstation. Tasks are enqueued on release or when a predecessor
// operation completes.

package sim

import (
	"fmt"
	"strings"
)

// TaskQueue is the dispatch queue of a workstation. Order is admission
// order; the active dispatching rule reorders it before each dispatch.
type TaskQueue struct {
	queue []*Task
}

// Enqueue adds a task to the back of the queue.
func (tq *TaskQueue) Enqueue(t *Task) {
	tq.queue = append(tq.queue, t)
}

// Len returns the number of queued tasks.
func (tq *TaskQueue) Len() int {
	return len(tq.queue)
}

// Peek returns the task at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (tq *TaskQueue) Peek() *Task {
	if len(tq.queue) == 0 {
		return nil
	}
	return tq.queue[0]
}

// Reorder applies fn to the queue contents, allowing in-place reordering.
// The Dispatcher.OrderQueue method is the primary consumer. fn receives
// the underlying slice and MUST NOT change its length.
func (tq *TaskQueue) Reorder(fn func([]*Task)) {
	if fn == nil {
		panic("Reorder: fn must not be nil")
	}
	n := len(tq.queue)
	fn(tq.queue)
	if len(tq.queue) != n {
		panic(fmt.Sprintf("Reorder: fn changed queue length from %d to %d", n, len(tq.queue)))
	}
}

// Dequeue removes and returns the task at the front of the queue.
// Returns nil if the queue is empty.
func (tq *TaskQueue) Dequeue() *Task {
	if len(tq.queue) == 0 {
		return nil
	}
	t := tq.queue[0]
	tq.queue = tq.queue[1:]
	return t
}

func (tq *TaskQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range tq.queue {
		sb.WriteString(t.String())
		if i < len(tq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
