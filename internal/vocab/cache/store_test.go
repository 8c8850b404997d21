package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetPut(t *testing.T) {
	s := New(0)

	_, ok := s.Get("haus")
	assert.False(t, ok)

	s.Put("haus", "дом")
	v, ok := s.Get("haus")
	require.True(t, ok)
	assert.Equal(t, "дом", v)

	s.Put("haus", "здание")
	v, _ = s.Get("haus")
	assert.Equal(t, "здание", v)
	assert.Equal(t, 1, s.Len())
}

func TestStore_UnboundedNeverEvicts(t *testing.T) {
	s := New(0)
	for i := 0; i < 1000; i++ {
		s.Put(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, 1000, s.Len())

	v, ok := s.Get("k0")
	require.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestStore_BoundedEvictsLeastRecentlyUsed(t *testing.T) {
	s := New(2)
	s.Put("a", 1)
	s.Put("b", 2)
	s.Get("a") // a is now most recent
	s.Put("c", 3)

	_, ok := s.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = s.Get("a")
	assert.True(t, ok)
	_, ok = s.Get("c")
	assert.True(t, ok)
}

func TestStore_StatsAndClear(t *testing.T) {
	s := New(0)
	s.Put("a", 1)
	s.Get("a")
	s.Get("missing")

	st := s.Stats()
	assert.Equal(t, int64(1), st.Hits)
	assert.Equal(t, int64(1), st.Misses)
	assert.InDelta(t, 50.0, st.HitRate, 0.001)
	assert.Equal(t, 1, st.Size)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, Stats{}, s.Stats())
}

func TestStore_Concurrent(t *testing.T) {
	s := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j)
				s.Put(key, j)
				s.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, s.Len())
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	c.Put("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
}
