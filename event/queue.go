package event

import (
	"sync/atomic"

	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
)

// Queue is a lock-free MPSC ring buffer carrying host input to the frame loop
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (input goroutine, watchers, signals)
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]neural.Event
	published [parameter.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event using lock-free CAS with published flags pattern
func (q *Queue) Push(ev neural.Event) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.EventBufferMask

			q.events[idx] = ev
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.EventQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.EventQueueSize)
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
func (q *Queue) Consume() []neural.Event {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > parameter.EventQueueSize {
			available = parameter.EventQueueSize
			currentHead = currentTail - parameter.EventQueueSize
		}

		result := make([]neural.Event, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & parameter.EventBufferMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			result = append(result, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(currentHead, currentHead+uint64(len(result))) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// DrainInto consumes pending events and posts them to the simulator in order,
// returning the consumed events so the caller can react to them
func (q *Queue) DrainInto(sim *neural.Simulator) []neural.Event {
	evs := q.Consume()
	for _, ev := range evs {
		sim.Post(ev)
	}
	return evs
}

// Len returns approximate pending event count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return min(int(tail-head), parameter.EventQueueSize)
}
