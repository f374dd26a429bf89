package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute, time.Minute)

	_, err := c.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set("k", `{"a":1}`, time.Minute))
	v, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v)

	require.NoError(t, c.Evict("k"))
	_, err = c.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory(time.Minute, time.Minute)

	require.NoError(t, c.Set("k", "v", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, err := c.Get("k")
	assert.ErrorIs(t, err, ErrNotFound)
}
