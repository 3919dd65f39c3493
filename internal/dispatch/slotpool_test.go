package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotPool_AcquireUpToCapacity(t *testing.T) {
	p := newSlotPool(2)

	assert.True(t, p.tryAcquire(1))
	assert.True(t, p.tryAcquire(2))
	assert.False(t, p.tryAcquire(3), "at capacity")

	p.release(1)
	assert.True(t, p.tryAcquire(3), "slot freed by release")
}

func TestSlotPool_ReacquireIsIdempotent(t *testing.T) {
	p := newSlotPool(1)

	assert.True(t, p.tryAcquire(1))
	assert.True(t, p.tryAcquire(1), "re-acquiring the same id must not consume another slot")
	assert.False(t, p.tryAcquire(2))
}

func TestSlotPool_ReleaseNonHolderIsNoop(t *testing.T) {
	p := newSlotPool(1)
	p.release(42) // never acquired

	assert.True(t, p.tryAcquire(1))
}
