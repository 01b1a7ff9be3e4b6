// Package gopool implements an embeddable, in-process worker pool.
//
// A pool owns a fixed set of goroutines draining a shared ready queue.
// Callers submit one-shot closures with Spawn or SpawnDetached, register
// periodic work with SpawnPeriodic, or open a structured Scope whose
// sub-tasks are guaranteed to finish before the scope returns. A goroutine
// running inside the pool (or one that has called Handle.EnterContext) can
// also reach the ambient pool through the free-function SpawnCurrent family
// without holding onto its own *Handle.
//
// Construction goes through Builder:
//
//	h, err := gopool.NewBuilder().
//		Threads(8).
//		Name("jobs").
//		Launch()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer h.Shutdown()
//
//	join := gopool.Spawn(h, func() int { return 42 })
//	result, err := join.Wait()
//
// Task panics are always recovered and surfaced as *PanicError; a task
// aborted by Shutdown surfaces ErrAborted. Submitting work into a pool that
// has already shut down panics, matching the fail-fast posture the pool
// takes everywhere else a misuse of its lifecycle is detected.
package gopool
