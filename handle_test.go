package gopool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCloneSharesUnderlyingPool(t *testing.T) {
	h, err := NewBuilder().Threads(1).Launch()
	require.NoError(t, err)
	defer h.Shutdown()

	clone := h.Clone()
	assert.Same(t, h.core, clone.core)

	join := Spawn(clone, func() int { return 5 })
	v, err := join.Wait()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestHandleShutdownIsIdempotent(t *testing.T) {
	h, err := NewBuilder().Threads(1).Launch()
	require.NoError(t, err)

	h.Shutdown()
	assert.NotPanics(t, func() { h.Shutdown() })
}
