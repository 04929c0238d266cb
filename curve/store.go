package curve

import (
	"math"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 10 * time.Minute
)

// valueBits folds -0 into +0 so the two zeros share a key and an entry.
// NaNs are still compared by payload.
func valueBits(v float64) uint64 {
	if v == 0 {
		v = 0
	}

	return math.Float64bits(v)
}

func (e *Entry) matches(raw []float64, tolerance, density int) bool {
	if e == nil || e.Tolerance != tolerance || e.Density != density || len(e.Raw) != len(raw) {
		return false
	}

	for idx, v := range raw {
		if valueBits(v) != valueBits(e.Raw[idx]) {
			return false
		}
	}

	return true
}

// NewLRUStore keeps at most size entries, evicting the least recently used.
func NewLRUStore(size int) (Store, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	c, err := lru.New[uint64, *Entry](size)
	if err != nil {
		return nil, err
	}

	return &lruStore{c: c}, nil
}

type lruStore struct {
	c *lru.Cache[uint64, *Entry]
}

func (s *lruStore) Get(key uint64) (*Entry, bool) {
	return s.c.Get(key)
}

func (s *lruStore) Add(key uint64, e *Entry) {
	s.c.Add(key, e)
}

func (s *lruStore) Len() int {
	return s.c.Len()
}

func (s *lruStore) Purge() {
	s.c.Purge()
}

// NewTTLStore drops every entry ttl after it was stored.
func NewTTLStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &ttlStore{
		c: cache.New(ttl, ttl*2),
	}
}

type ttlStore struct {
	c *cache.Cache
}

func (s *ttlStore) cacheKey(key uint64) string {
	return strconv.FormatUint(key, 16)
}

func (s *ttlStore) Get(key uint64) (*Entry, bool) {
	i, ok := s.c.Get(s.cacheKey(key))
	if !ok {
		return nil, false
	}

	e, ok := i.(*Entry)

	return e, ok
}

func (s *ttlStore) Add(key uint64, e *Entry) {
	s.c.Set(s.cacheKey(key), e, cache.DefaultExpiration)
}

func (s *ttlStore) Len() int {
	return s.c.ItemCount()
}

func (s *ttlStore) Purge() {
	s.c.Flush()
}
