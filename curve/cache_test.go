package curve

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spyCompute(calls *atomic.Int32, delay time.Duration) ComputeFunc {
	return func(raw []float64, tolerance, density int) (*Pair, error) {
		calls.Add(1)

		if delay > 0 {
			time.Sleep(delay)
		}

		return Build(raw, tolerance, density)
	}
}

func TestCacheLookupByValue(t *testing.T) {
	var calls atomic.Int32

	c := NewCache(nil, WithCompute(spyCompute(&calls, 0)))

	raw := []float64{1, 2, 3, 2, 5}
	p1, err := c.Lookup(raw, 2, 16)
	require.Nil(t, err)

	other := append([]float64(nil), raw...)
	p2, err := c.Lookup(other, 2, 16)
	require.Nil(t, err)

	assert.Same(t, p1, p2)
	assert.EqualValues(t, 1, calls.Load())

	raw[0] = 100
	p3, err := c.Lookup(other, 2, 16)
	require.Nil(t, err)
	assert.Same(t, p1, p3)

	p4, err := c.Lookup(other, 3, 16)
	require.Nil(t, err)
	assert.NotSame(t, p1, p4)
	assert.EqualValues(t, 2, calls.Load())

	stats := c.Stats()
	assert.EqualValues(t, 2, stats.Hits)
	assert.EqualValues(t, 2, stats.Misses)
	assert.Equal(t, 2, stats.Len)
}

func TestCacheErrorsNotStored(t *testing.T) {
	var calls atomic.Int32

	c := NewCache(nil, WithCompute(spyCompute(&calls, 0)))

	_, err := c.Lookup(nil, 1, 8)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = c.Lookup(nil, 1, 8)
	assert.ErrorIs(t, err, ErrEmptySeries)

	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 0, c.Stats().Len)
}

func TestCacheConcurrentMiss(t *testing.T) {
	var calls atomic.Int32

	c := NewCache(nil, WithCompute(spyCompute(&calls, 20*time.Millisecond)))

	var wg sync.WaitGroup

	pairs := make([]*Pair, 32)

	for idx := range pairs {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			p, err := c.Lookup([]float64{3, 1, 4, 1, 5, 9, 2, 6}, 4, 64)
			assert.Nil(t, err)

			pairs[idx] = p
		}(idx)
	}

	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())

	for _, p := range pairs {
		assert.Same(t, pairs[0], p)
	}
}

// oneSlotStore hands back its only entry for every key.
type oneSlotStore struct {
	e *Entry
}

func (s *oneSlotStore) Get(uint64) (*Entry, bool) { return s.e, s.e != nil }
func (s *oneSlotStore) Add(_ uint64, e *Entry)    { s.e = e }
func (s *oneSlotStore) Len() int {
	if s.e == nil {
		return 0
	}

	return 1
}
func (s *oneSlotStore) Purge() { s.e = nil }

func TestCacheVerifiesEntry(t *testing.T) {
	c := NewCache(&oneSlotStore{})

	a, err := c.Lookup([]float64{1, 2, 3}, 1, 3)
	require.Nil(t, err)

	b, err := c.Lookup([]float64{3, 2, 1}, 1, 3)
	require.Nil(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, b.Sharp.Min.Index)
	assert.EqualValues(t, 2, c.Stats().Misses)
}

func TestCacheLRUEviction(t *testing.T) {
	var calls atomic.Int32

	c, err := NewCacheFromConfig(CacheConfig{Size: 2}, WithCompute(spyCompute(&calls, 0)))
	require.Nil(t, err)

	for _, raw := range [][]float64{{1}, {2}, {3}} {
		_, err = c.Lookup(raw, 1, 2)
		require.Nil(t, err)
	}

	assert.Equal(t, 2, c.Stats().Len)

	_, err = c.Lookup([]float64{1}, 1, 2)
	require.Nil(t, err)
	assert.EqualValues(t, 4, calls.Load())

	_, err = c.Lookup([]float64{3}, 1, 2)
	require.Nil(t, err)
	assert.EqualValues(t, 4, calls.Load())

	c.Purge()
	assert.Equal(t, 0, c.Stats().Len)
}

func TestTTLStore(t *testing.T) {
	c, err := NewCacheFromConfig(CacheConfig{TTL: 50 * time.Millisecond})
	require.Nil(t, err)

	p1, err := c.Lookup([]float64{1, 2}, 1, 4)
	require.Nil(t, err)

	p2, err := c.Lookup([]float64{1, 2}, 1, 4)
	require.Nil(t, err)
	assert.Same(t, p1, p2)

	time.Sleep(120 * time.Millisecond)

	p3, err := c.Lookup([]float64{1, 2}, 1, 4)
	require.Nil(t, err)
	assert.NotSame(t, p1, p3)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key([]float64{1, 2}, 1, 4), Key([]float64{1, 2}, 1, 4))
	assert.NotEqual(t, Key([]float64{1, 2}, 1, 4), Key([]float64{1, 2}, 2, 4))
	assert.NotEqual(t, Key([]float64{1, 2}, 1, 4), Key([]float64{2, 1}, 1, 4))
	assert.Equal(t, Key([]float64{0}, 1, 4), Key([]float64{math.Copysign(0, -1)}, 1, 4))
	assert.NotEqual(t, Key([]float64{0}, 1, 4), Key([]float64{math.SmallestNonzeroFloat64}, 1, 4))
}

func TestCacheSignedZero(t *testing.T) {
	var calls atomic.Int32

	c := NewCache(nil, WithCompute(spyCompute(&calls, 0)))

	p1, err := c.Lookup([]float64{0, 1}, 1, 4)
	require.Nil(t, err)

	p2, err := c.Lookup([]float64{math.Copysign(0, -1), 1}, 1, 4)
	require.Nil(t, err)

	assert.Same(t, p1, p2)
	assert.EqualValues(t, 1, calls.Load())

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Len)
}

func TestEntryMatchesSignedZero(t *testing.T) {
	e := &Entry{Raw: []float64{math.Copysign(0, -1), 2}, Tolerance: 1, Density: 4}

	assert.True(t, e.matches([]float64{0, 2}, 1, 4))
	assert.False(t, e.matches([]float64{0, 2}, 1, 5))
	assert.False(t, e.matches([]float64{math.NaN(), 2}, 1, 4))
}

func TestStoreBackends(t *testing.T) {
	lruStore, err := NewLRUStore(0)
	require.Nil(t, err)

	for name, s := range map[string]Store{
		"lru": lruStore,
		"ttl": NewTTLStore(time.Minute),
		"one": &oneSlotStore{},
	} {
		e := &Entry{Raw: []float64{1}, Tolerance: 1, Density: 2}

		_, ok := s.Get(7)
		assert.False(t, ok, name)

		s.Add(7, e)

		got, ok := s.Get(7)
		assert.True(t, ok, name)
		assert.Same(t, e, got, name)
		assert.Equal(t, 1, s.Len(), name)

		s.Purge()
		assert.Equal(t, 0, s.Len(), name)
	}
}
