package gopool

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// Go has no goroutine-local storage, so the "current pool" context is kept
// in a package-level map keyed by the calling goroutine's runtime ID. This
// is the same technique production single-goroutine reactor code uses to
// confirm a call happens on its owning goroutine: runtime.Stack's first
// line always starts with "goroutine <id> [...]", and there is no public
// API for this, so the stack trace is parsed.
var (
	contextMu sync.RWMutex
	contexts  = make(map[uint64]*Handle)
)

func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := buf[:n]

	const prefix = "goroutine "
	line = bytes.TrimPrefix(line, []byte(prefix))

	sep := bytes.IndexByte(line, ' ')
	if sep < 0 {
		panic("gopool: unexpected runtime.Stack format")
	}

	id, err := strconv.ParseUint(string(line[:sep]), 10, 64)
	if err != nil {
		panic("gopool: cannot parse goroutine id: " + err.Error())
	}
	return id
}

func setContext(h *Handle) {
	id := goroutineID()
	contextMu.Lock()
	contexts[id] = h
	contextMu.Unlock()
}

func clearContext() {
	id := goroutineID()
	contextMu.Lock()
	delete(contexts, id)
	contextMu.Unlock()
}

func tryCurrentHandle() (*Handle, bool) {
	id := goroutineID()
	contextMu.RLock()
	h, ok := contexts[id]
	contextMu.RUnlock()
	return h, ok
}

// ContextGuard clears the context it was obtained from when Close is
// called. Go has no destructors, so callers use it the way they would any
// other closer: `guard := h.EnterContext(); defer guard.Close()`.
type ContextGuard struct {
	closed bool
}

// Close removes the pool handle installed by EnterContext from the
// calling goroutine's context. Safe to call more than once.
func (g *ContextGuard) Close() {
	if g.closed {
		return
	}
	g.closed = true
	clearContext()
}

// CurrentHandle returns the Handle installed on the calling goroutine,
// panicking if none is set. A goroutine is "inside" a pool either because
// it is one of the pool's own workers or because it called EnterContext.
func CurrentHandle() *Handle {
	h, ok := tryCurrentHandle()
	if !ok {
		panic("gopool: not inside a worker pool")
	}
	return h
}

// TryCurrentHandle is the non-panicking form of CurrentHandle.
func TryCurrentHandle() (*Handle, bool) {
	return tryCurrentHandle()
}
