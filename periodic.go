package gopool

import (
	"time"
)

// Forever is passed as the times argument to SpawnPeriodic (or
// SpawnPeriodicCurrent) to schedule a periodic task with no invocation
// limit.
const Forever = -1

// periodicTask is a repeating unit of work. Its first submission goes
// through core.schedulePeriodic; every reschedule after that goes through
// core.reschedulePeriodic instead, since a periodic task completing a run
// concurrently with Shutdown() is expected, not a programming error, and
// must not panic the worker running it.
type periodicTask struct {
	core  *core
	fn    func()
	every time.Duration
	next  time.Time

	remaining int // < 0 means unlimited, matching Forever
	cell      *resultCell[struct{}]
}

func newPeriodicTask(c *core, fn func(), every time.Duration, times int) *periodicTask {
	return &periodicTask{
		core:      c,
		fn:        fn,
		every:     every,
		next:      time.Now().Add(every),
		remaining: times,
		cell:      newResultCell[struct{}](),
	}
}

func (p *periodicTask) canRun() bool {
	return !time.Now().Before(p.next)
}

// asTask wraps the periodic task so it can sit in the same ready queue as
// one-shot tasks.
func (p *periodicTask) asTask() *task {
	return &task{
		run: p.run,
		abort: func() {
			p.cell.abort()
			p.core.recordAborted()
		},
	}
}

func (p *periodicTask) run() {
	if p.cell.isAborted() {
		return
	}

	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				p.core.logger.Warn("periodic task panicked",
					"pool", p.core.name, "panic", r)
				p.core.recordPanicked(time.Since(start).Seconds())
			}
		}()
		p.fn()
		p.core.recordCompleted(time.Since(start).Seconds())
	}()
	p.core.recordPeriodicRun()

	if p.remaining > 0 {
		p.remaining--
	}

	if p.remaining < 0 || p.remaining >= 1 {
		p.next = time.Now().Add(p.every)
		if p.core.reschedulePeriodic(p) {
			return
		}
		// The pool shut down while this run was in flight: there is no
		// live worker left to pick up another reschedule, so stop here
		// instead of rescheduling into a stopped pool.
		p.cell.abort()
		p.core.recordAborted()
		return
	}

	p.cell.finish(struct{}{}, nil)
}

// PeriodicHandle lets a caller abort a periodic task between iterations.
// Abort never interrupts a run already in progress, only future
// reschedules.
type PeriodicHandle struct {
	cell *resultCell[struct{}]
}

// Abort stops the periodic task from being rescheduled again. If it is
// currently sleeping in the timer or waiting in the ready queue, that
// pending run is skipped too.
func (p *PeriodicHandle) Abort() {
	p.cell.abort()
}

// Done closes once the periodic task has exhausted its invocation count
// or been aborted.
func (p *PeriodicHandle) Done() <-chan struct{} {
	return p.cell.done
}
