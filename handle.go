package gopool

import "time"

// Handle is the façade a caller holds onto a launched pool: spawning,
// shutting down, and entering/leaving its ambient context all go through
// here. A Handle is cheap to copy - Clone returns another Handle backed by
// the same *core - because the underlying pool is kept alive by ordinary
// garbage-collector reachability, not by manual reference counting the way
// the original needed.
type Handle struct {
	core *core
}

// Clone returns a Handle backed by the same pool. Provided for API parity
// with the original's reference-counted clone and for callers who want an
// explicit copy before handing a Handle to another goroutine; it has no
// effect on the pool's lifecycle.
func (h *Handle) Clone() *Handle {
	return &Handle{core: h.core}
}

// SpawnDetached submits fn without a way to observe its result. Panics are
// still recovered and counted; there is simply nothing to report them to.
func (h *Handle) SpawnDetached(fn func()) {
	t := buildTask[struct{}](h.core, nil, func() struct{} {
		fn()
		return struct{}{}
	})
	h.core.schedule(t)
}

// SpawnPeriodic submits fn to run every `every` duration, up to `times`
// invocations, or forever if times is Forever. The returned handle can
// abort future reschedules.
func (h *Handle) SpawnPeriodic(fn func(), every time.Duration, times int) *PeriodicHandle {
	h.core.assertRunning()
	p := newPeriodicTask(h.core, fn, every, times)
	h.core.schedulePeriodic(p)
	return &PeriodicHandle{cell: p.cell}
}

// Shutdown drains pending work, aborts it, and waits for every worker
// goroutine to exit. Idempotent: a second call is a no-op.
func (h *Handle) Shutdown() {
	h.core.shutdown()
}

// EnterContext installs this Handle as the calling goroutine's current
// pool, so SpawnCurrent and friends become reachable from it. Calling this
// again on a goroutine that already has a context installed is fatal - it
// almost always means a guard from an earlier call was forgotten.
func (h *Handle) EnterContext() *ContextGuard {
	if _, ok := tryCurrentHandle(); ok {
		panic("gopool: goroutine is already inside the context of a worker pool")
	}
	setContext(h)
	return &ContextGuard{}
}
