package gopool

import "time"

// Spawn submits fn to h's pool and returns a handle for its result. Go
// disallows type parameters on methods, so the generic spawn entry points
// are free functions that take the receiver as their first argument rather
// than methods on Handle.
func Spawn[T any](h *Handle, fn func() T) *JoinHandle[T] {
	cell := newResultCell[T]()
	t := buildTask(h.core, cell, fn)
	h.core.schedule(t)
	return &JoinHandle[T]{cell: cell}
}

// SpawnCurrent is Spawn against CurrentHandle(). Panics if the calling
// goroutine has no pool context installed.
func SpawnCurrent[T any](fn func() T) *JoinHandle[T] {
	return Spawn(CurrentHandle(), fn)
}

// SpawnDetachedCurrent is Handle.SpawnDetached against CurrentHandle().
func SpawnDetachedCurrent(fn func()) {
	CurrentHandle().SpawnDetached(fn)
}

// SpawnPeriodicCurrent is Handle.SpawnPeriodic against CurrentHandle().
func SpawnPeriodicCurrent(fn func(), every time.Duration, times int) *PeriodicHandle {
	return CurrentHandle().SpawnPeriodic(fn, every, times)
}
