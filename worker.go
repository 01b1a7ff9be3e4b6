package gopool

import "time"

// defaultPollInterval bounds how long a worker sleeps when it acquired the
// timer lock on its last pass and found the ready queue empty, whether or
// not the timer holds any entries. Matches the polling interval used by the
// implementation this pool is ported from.
const defaultPollInterval = 150 * time.Millisecond

// worker is a single goroutine draining the pool's ready queue. Goroutines
// are the idiomatic Go stand-in for the original's fixed set of OS
// threads: the Go runtime already multiplexes them onto GOMAXPROCS
// threads, so the pool does not need to manage OS threads itself.
type worker struct {
	id     int
	core   *core
	handle *Handle
}

func (w *worker) run() {
	setContext(w.handle)
	w.core.hooks.callOnStart()
	w.core.logger.Debug("worker started", "pool", w.core.name, "worker", w.id)

	for {
		if w.core.exit.Load() {
			break
		}

		lockAcquired := w.core.timer.tryPromote(w.core.readyQueue)
		w.core.telemetry.SetTimerDepth(w.core.timer.len())

		if w.core.readyQueue.isEmpty() {
			if w.core.exit.Load() {
				break
			}
			if lockAcquired {
				w.core.waitWake(defaultPollInterval)
			} else {
				w.core.waitWake(0)
			}
		}

		if w.core.exit.Load() {
			break
		}

		if t, ok := w.core.readyQueue.pop(); ok {
			w.core.telemetry.SetQueueDepth(w.core.readyQueue.len())
			w.core.activeWorkers.Add(1)
			w.core.telemetry.SetActiveWorkers(int(w.core.activeWorkers.Load()))

			w.core.hooks.callBeforeTask()
			t.run()
			w.core.hooks.callAfterTask()

			w.core.activeWorkers.Add(-1)
			w.core.telemetry.SetActiveWorkers(int(w.core.activeWorkers.Load()))
		}
	}

	w.core.hooks.callOnStop()
	w.core.logger.Debug("worker stopped", "pool", w.core.name, "worker", w.id)
	clearContext()
	w.core.wg.Done()
}
