package cache

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUMissThenHit(t *testing.T) {
	c := New[int](2)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Insert("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, uint64(1), stats.Inserts)
	assert.Equal(t, uint64(1), stats.Size)
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2)
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Get("a") // a is now most-recently-used; b is next to evict
	c.Insert("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b should have been evicted")

	_, ok = c.Get("a")
	assert.True(t, ok)

	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRUSizeNeverExceedsCapacity(t *testing.T) {
	c := New[int](3)
	for i := 0; i < 100; i++ {
		c.Insert("key-"+strconv.Itoa(i), i)
	}
	assert.LessOrEqual(t, c.Stats().Size, uint64(3))
}
