package gopool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueueFIFO(t *testing.T) {
	q := newReadyQueue()
	assert.True(t, q.isEmpty())

	order := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		i := i
		q.push(&task{run: func() { order = append(order, i) }})
	}

	assert.Equal(t, 3, q.len())

	for i := 0; i < 3; i++ {
		item, ok := q.pop()
		require.True(t, ok)
		item.run()
	}

	assert.Equal(t, []int{0, 1, 2}, order)
	assert.True(t, q.isEmpty())
}

func TestReadyQueuePopEmpty(t *testing.T) {
	q := newReadyQueue()
	_, ok := q.pop()
	assert.False(t, ok)
}

func TestReadyQueueDrain(t *testing.T) {
	q := newReadyQueue()
	aborted := 0
	for i := 0; i < 5; i++ {
		q.push(&task{abort: func() { aborted++ }})
	}

	items := q.drain()
	assert.Len(t, items, 5)
	assert.True(t, q.isEmpty())

	for _, item := range items {
		item.abort()
	}
	assert.Equal(t, 5, aborted)
}

func TestReadyQueueConcurrentPushPop(t *testing.T) {
	q := newReadyQueue()
	const n = 200

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			q.push(&task{run: func() {}})
		}()
	}
	wg.Wait()

	assert.Equal(t, n, q.len())

	popped := 0
	for {
		if _, ok := q.pop(); !ok {
			break
		}
		popped++
	}
	assert.Equal(t, n, popped)
}
