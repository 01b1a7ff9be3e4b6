package gopool

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(name string) *core {
	return newCore(name, Hooks{}, nil, slog.Default())
}

func TestTimerPromotesDueTasks(t *testing.T) {
	c := newTestCore("timer-due")
	tm := newTimer()

	ran := false
	p := newPeriodicTask(c, func() { ran = true }, time.Hour, 1)
	p.next = time.Now().Add(-time.Millisecond) // already due
	tm.push(p)

	rq := newReadyQueue()
	ok := tm.tryPromote(rq)
	require.True(t, ok)
	assert.Equal(t, 0, tm.len())
	assert.Equal(t, 1, rq.len())

	item, popped := rq.pop()
	require.True(t, popped)
	item.run()
	assert.True(t, ran)
}

func TestTimerLeavesNotYetDueTasks(t *testing.T) {
	c := newTestCore("timer-not-due")
	tm := newTimer()

	p := newPeriodicTask(c, func() {}, time.Hour, 1)
	tm.push(p)

	rq := newReadyQueue()
	ok := tm.tryPromote(rq)
	require.True(t, ok)
	assert.Equal(t, 1, tm.len())
	assert.True(t, rq.isEmpty())
}

func TestTimerTryPromoteRespectsLock(t *testing.T) {
	tm := newTimer()
	tm.mu.Lock()
	defer tm.mu.Unlock()

	ok := tm.tryPromote(newReadyQueue())
	assert.False(t, ok)
}
