package gopool

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Scope is a structured-concurrency region: every sub-task spawned through
// it with SpawnScoped is guaranteed to have finished by the time the
// Scoped call that created it returns. It wraps an *errgroup.Group rather
// than a hand-rolled atomic counter plus park token, because an
// errgroup.Group already is exactly that in idiomatic Go form - Go
// increments a live-task count, a wrapped function returning decrements
// it, and Wait parks until it reaches zero.
type Scope struct {
	handle *Handle
	eg     *errgroup.Group
}

// Scoped opens a scope, runs body on the calling goroutine, then blocks
// until every sub-task spawned into the scope has finished before
// returning body's result.
func Scoped[R any](h *Handle, body func(*Scope) R) R {
	s := &Scope{handle: h, eg: &errgroup.Group{}}
	result := body(s)
	_ = s.eg.Wait()
	return result
}

// SpawnScoped submits fn as a task on the scope's pool - so it still gets
// the pool's ordinary panic containment and abort semantics - and
// registers its completion with the scope's errgroup so Scoped's barrier
// waits for it too.
func SpawnScoped[T any](s *Scope, fn func() T) *ScopedJoinHandle[T] {
	var mu sync.Mutex
	var out T

	join := Spawn(s.handle, func() struct{} {
		v := fn()
		mu.Lock()
		out = v
		mu.Unlock()
		return struct{}{}
	})

	s.eg.Go(func() error {
		_, err := join.Wait()
		return err
	})

	return &ScopedJoinHandle[T]{join: join, mu: &mu, out: &out}
}
