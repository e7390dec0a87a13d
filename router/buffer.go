package router

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/meshnoc/noc"
)

// FlitQueue is the bounded input buffer of one router port.
type FlitQueue struct {
	buf      sim.Buffer
	disabled bool
}

// NewFlitQueue creates an enabled, empty queue.
func NewFlitQueue(name string, capacity int) *FlitQueue {
	return &FlitQueue{
		buf: sim.NewBuffer(name, capacity),
	}
}

// Name returns the name of the queue.
func (q *FlitQueue) Name() string {
	return q.buf.Name()
}

// Disable marks the queue as facing a port without a neighbor. A disabled
// queue must never receive a flit.
func (q *FlitQueue) Disable() {
	q.disabled = true
}

// IsDisabled returns true if the queue has been disabled.
func (q *FlitQueue) IsDisabled() bool {
	return q.disabled
}

// Push appends a flit at the back of the queue.
func (q *FlitQueue) Push(f noc.Flit) {
	if q.disabled || !q.buf.CanPush() {
		slog.Warn("Flit dropped",
			"Queue", q.Name(),
			"Flit", f.String(),
			"Disabled", q.disabled,
			"Size", q.Size(),
		)
		violate(q.Name(), q.String(), "push %s to a full or disabled queue", f)
	}

	q.buf.Push(f)
}

// Pop removes and returns the flit at the front of the queue.
func (q *FlitQueue) Pop() noc.Flit {
	if q.IsEmpty() {
		violate(q.Name(), q.String(), "pop from an empty queue")
	}

	return q.buf.Pop().(noc.Flit)
}

// Front returns the flit at the front of the queue without removing it.
func (q *FlitQueue) Front() noc.Flit {
	if q.IsEmpty() {
		violate(q.Name(), q.String(), "front of an empty queue")
	}

	return q.buf.Peek().(noc.Flit)
}

// IsFull returns true if no more flit can be pushed.
func (q *FlitQueue) IsFull() bool {
	return !q.buf.CanPush()
}

// IsEmpty returns true if the queue holds no flit.
func (q *FlitQueue) IsEmpty() bool {
	return q.buf.Size() == 0
}

// Size returns the number of flits in the queue.
func (q *FlitQueue) Size() int {
	return q.buf.Size()
}

// Capacity returns the maximum number of flits in the queue.
func (q *FlitQueue) Capacity() int {
	return q.buf.Capacity()
}

// FreeSlots returns how many more flits can be pushed.
func (q *FlitQueue) FreeSlots() int {
	return q.buf.Capacity() - q.buf.Size()
}

// Snapshot returns the flits in the queue, front first.
func (q *FlitQueue) Snapshot() []noc.Flit {
	n := q.buf.Size()
	flits := make([]noc.Flit, 0, n)

	for i := 0; i < n; i++ {
		f := q.buf.Pop().(noc.Flit)
		flits = append(flits, f)
		q.buf.Push(f)
	}

	return flits
}

func (q *FlitQueue) String() string {
	return fmt.Sprintf("%s [%d/%d] %s",
		q.Name(), q.Size(), q.Capacity(), flitsString(q.Snapshot()))
}
