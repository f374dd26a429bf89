package common

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(start time.Time) (*InMemoryRateLimiter, *time.Time) {
	now := start
	limiter := &InMemoryRateLimiter{now: func() time.Time { return now }}
	limiter.Init(time.Minute)
	return limiter, &now
}

func TestInMemoryRateLimiter(t *testing.T) {
	t.Run("allows up to the limit, then rejects", func(t *testing.T) {
		limiter, _ := newTestLimiter(time.Now())
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Request("k", 3, 60), "request %d", i)
		}
		assert.False(t, limiter.Request("k", 3, 60))
	})

	t.Run("window slides", func(t *testing.T) {
		limiter, now := newTestLimiter(time.Now())
		assert.True(t, limiter.Request("k", 2, 60))
		assert.True(t, limiter.Request("k", 2, 60))
		assert.False(t, limiter.Request("k", 2, 60))

		*now = now.Add(61 * time.Second)
		assert.True(t, limiter.Request("k", 2, 60))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter, _ := newTestLimiter(time.Now())
		assert.True(t, limiter.Request("a", 1, 60))
		assert.False(t, limiter.Request("a", 1, 60))
		assert.True(t, limiter.Request("b", 1, 60))
	})

	t.Run("partial window expiry readmits gradually", func(t *testing.T) {
		limiter, now := newTestLimiter(time.Now())
		assert.True(t, limiter.Request("k", 2, 60))
		*now = now.Add(40 * time.Second)
		assert.True(t, limiter.Request("k", 2, 60))
		assert.False(t, limiter.Request("k", 2, 60))

		// First stamp ages out, second is still inside the window.
		*now = now.Add(30 * time.Second)
		assert.True(t, limiter.Request("k", 2, 60))
		assert.False(t, limiter.Request("k", 2, 60))
	})

	t.Run("many keys do not interfere", func(t *testing.T) {
		limiter, _ := newTestLimiter(time.Now())
		for i := 0; i < 100; i++ {
			assert.True(t, limiter.Request(fmt.Sprintf("key-%d", i), 5, 60))
		}
	})
}
