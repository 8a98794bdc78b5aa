// Package queue implements the Command Queue (§4.3): the thread-safe
// handoff between the Receiver goroutine(s) and the Render Tick.
package queue

import (
	"sync"

	"patchdisplay/internal/protocol"
)

// Queue is an unbounded, multi-producer/single-consumer FIFO of parsed
// commands. It carries no ordering guarantee across (kind, row, col)
// keys beyond insertion order — the Coalescer imposes the real order.
//
// A mutex-guarded slice is used instead of an unbuffered
// channel so that Drain can hand the Render Tick every pending command
// in one lock/unlock pair rather than one channel receive per item.
type Queue struct {
	mu    sync.Mutex
	items []protocol.Command
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Push enqueues cmd. Safe for concurrent use by multiple producers.
func (q *Queue) Push(cmd protocol.Command) {
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
}

// Drain removes and returns every command currently queued, in the
// order they were pushed. It is intended to be called once per Render
// Tick by the single consumer.
func (q *Queue) Drain() []protocol.Command {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return nil
	}
	out := q.items
	q.items = nil
	q.mu.Unlock()
	return out
}

// Len reports the number of commands currently queued. Intended for
// telemetry/diagnostics, not for control flow (it can change the
// instant it's read).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
