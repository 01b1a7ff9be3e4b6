package gopool

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ChuLiYu/gopool/internal/telemetry"
)

// core is the state shared by every worker goroutine and every Handle
// cloned from the same pool. Its fields are safe for concurrent use:
// readyQueue and timer guard themselves, exit is a single atomic flag
// written exactly once (by shutdown), and wakeCh/wakePending implement the
// bounded-park/unbounded-park split a condition variable would otherwise
// give us.
type core struct {
	name      string
	hooks     Hooks
	logger    *slog.Logger
	telemetry *telemetry.Collector

	readyQueue *readyQueue
	timer      *timer

	wakeCh      chan struct{}
	wakePending atomic.Bool

	// submitMu serializes every path that pushes into readyQueue/timer
	// against the exit transition in shutdown, so a submission can never
	// observe "not yet shut down" and then land after shutdown has already
	// drained the queue and closed wakeCh.
	submitMu sync.Mutex
	exit     atomic.Bool

	activeWorkers atomic.Int32

	wg sync.WaitGroup
}

func newCore(name string, hooks Hooks, collector *telemetry.Collector, logger *slog.Logger) *core {
	if logger == nil {
		logger = slog.Default()
	}
	return &core{
		name:       name,
		hooks:      hooks,
		logger:     logger,
		telemetry:  collector,
		readyQueue: newReadyQueue(),
		timer:      newTimer(),
		wakeCh:     make(chan struct{}, 1),
	}
}

// assertRunning panics if the pool has already shut down. Submitting work
// into a stopped pool is a programming error, not a recoverable condition,
// so it is fatal rather than a returned error.
func (c *core) assertRunning() {
	if c.exit.Load() {
		panic("gopool: pool \"" + c.name + "\" is not running")
	}
}

func (c *core) schedule(t *task) {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()
	c.assertRunning()
	c.readyQueue.push(t)
	c.telemetry.RecordScheduled()
	c.telemetry.SetQueueDepth(c.readyQueue.len())
	c.wake()
}

func (c *core) schedulePeriodic(p *periodicTask) {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()
	c.assertRunning()
	if p.canRun() {
		c.readyQueue.push(p.asTask())
		c.telemetry.SetQueueDepth(c.readyQueue.len())
		c.wake()
		return
	}
	c.timer.push(p)
	c.telemetry.SetTimerDepth(c.timer.len())
}

// reschedulePeriodic re-submits p for its next run from inside a worker
// goroutine, after a run has just completed. Unlike schedulePeriodic, it
// never panics on a stopped pool: a periodic task finishing its fn() call
// concurrently with Shutdown() is ordinary, valid usage, not a programming
// error, so losing the race here just drops the reschedule instead of
// crashing the worker that's trying to make it. Reports whether the task
// was re-submitted (to the ready queue or the timer); false means the pool
// had already started shutting down.
func (c *core) reschedulePeriodic(p *periodicTask) bool {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()
	if c.exit.Load() {
		return false
	}
	if p.canRun() {
		c.readyQueue.push(p.asTask())
		c.telemetry.SetQueueDepth(c.readyQueue.len())
		c.wake()
		return true
	}
	c.timer.push(p)
	c.telemetry.SetTimerDepth(c.timer.len())
	return true
}

// wake signals a single blocked worker. The pending flag deduplicates
// bursts of wake() calls between the moment a worker clears it and the
// moment it actually parks, so schedule() never has to know whether a
// worker is currently sleeping.
func (c *core) wake() {
	if c.wakePending.CompareAndSwap(false, true) {
		select {
		case c.wakeCh <- struct{}{}:
		default:
		}
	}
}

// waitWake parks until woken or, if timeout is positive, until it elapses.
// A non-positive timeout parks unboundedly.
func (c *core) waitWake(timeout time.Duration) {
	c.wakePending.Store(false)
	if timeout <= 0 {
		<-c.wakeCh
		return
	}
	select {
	case <-c.wakeCh:
	case <-time.After(timeout):
	}
}

// shutdown drains and aborts the ready queue, flips the exit flag, wakes
// every blocked worker, and waits for them all to exit. A second call is a
// no-op: shutdown is idempotent by design, since a worker-pool consumer
// calling it twice (e.g. once explicitly and once via a deferred call) is
// a reasonable and common pattern rather than a bug to panic on.
func (c *core) shutdown() {
	c.submitMu.Lock()
	if !c.exit.CompareAndSwap(false, true) {
		c.submitMu.Unlock()
		return
	}
	drained := c.readyQueue.drain()
	c.submitMu.Unlock()

	// Every schedule/schedulePeriodic/reschedulePeriodic call that could
	// still push or wake() has either already finished (and its task was
	// drained above) or will now see exit=true under submitMu and refuse
	// to push, so nothing races the drain or the close below.
	for _, t := range drained {
		t.abort()
	}
	c.telemetry.SetQueueDepth(0)

	// Clears the calling goroutine's own context, matching the pattern of
	// the goroutine that launched the pool being the one that later shuts
	// it down and should stop seeing itself as "inside" it.
	clearContext()

	// Closing wakeCh, rather than sending on it, wakes every worker
	// currently parked on it at once - the channel equivalent of a condvar
	// broadcast.
	close(c.wakeCh)

	c.wg.Wait()
	c.logger.Debug("pool shut down", "pool", c.name)
}

func (c *core) recordPanicked(seconds float64)  { c.telemetry.RecordPanicked(seconds) }
func (c *core) recordCompleted(seconds float64) { c.telemetry.RecordCompleted(seconds) }
func (c *core) recordAborted()                  { c.telemetry.RecordAborted() }
func (c *core) recordPeriodicRun()              { c.telemetry.RecordPeriodicRun() }
