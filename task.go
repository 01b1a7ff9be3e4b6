package gopool

import "time"

// task is the pool's type-erased unit of work. Generic task outputs are
// captured at construction time inside the run/abort closures, which is
// the idiomatic Go substitute for the original's monomorphized
// function-pointer-plus-vtable erasure: a closure already carries its
// concrete type parameter with it, so no vtable is needed.
type task struct {
	run   func()
	abort func()
}

// buildTask wires a user closure, its result cell, and the owning core's
// telemetry together into a single runnable task. Used by Spawn and by
// SpawnDetached (with a nil cell).
func buildTask[T any](c *core, cell *resultCell[T], fn func() T) *task {
	return &task{
		run: func() {
			if cell != nil && cell.isAborted() {
				return
			}
			start := time.Now()
			defer func() {
				if r := recover(); r != nil {
					if cell != nil {
						var zero T
						cell.finish(zero, &PanicError{Payload: r})
					}
					c.recordPanicked(time.Since(start).Seconds())
				}
			}()
			v := fn()
			if cell != nil {
				cell.finish(v, nil)
			}
			c.recordCompleted(time.Since(start).Seconds())
		},
		abort: func() {
			if cell != nil {
				cell.abort()
			}
			c.recordAborted()
		},
	}
}
