package curve

import (
	"encoding/binary"
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/sgostarter/i/l"
	"golang.org/x/sync/singleflight"
)

type CacheConfig struct {
	// Size bounds the LRU store. Ignored when TTL is set.
	Size int           `yaml:"size" json:"size"`
	TTL  time.Duration `yaml:"ttl" json:"ttl"`
}

type CacheStats struct {
	Hits   int64
	Misses int64
	Len    int
}

type Option func(c *Cache)

func WithCompute(fn ComputeFunc) Option {
	return func(c *Cache) {
		if fn != nil {
			c.compute = fn
		}
	}
}

func WithLogger(logger l.Wrapper) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Cache memoizes curve pairs by value of (raw, tolerance, density). It is
// safe for concurrent use; concurrent misses on one key compute once.
type Cache struct {
	logger  l.Wrapper
	store   Store
	compute ComputeFunc

	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

func NewCache(store Store, opts ...Option) *Cache {
	c := &Cache{
		logger:  l.NewNopLoggerWrapper(),
		store:   store,
		compute: Build,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.WithFields(l.StringField(l.ClsKey, "Cache"))

	if c.store == nil {
		// DefaultCacheSize is positive, lru.New cannot fail
		c.store, _ = NewLRUStore(DefaultCacheSize)
	}

	return c
}

func NewCacheFromConfig(cfg CacheConfig, opts ...Option) (*Cache, error) {
	if cfg.TTL > 0 {
		return NewCache(NewTTLStore(cfg.TTL), opts...), nil
	}

	store, err := NewLRUStore(cfg.Size)
	if err != nil {
		return nil, err
	}

	return NewCache(store, opts...), nil
}

// Key hashes the memoization key. Equal keys hash equally; the converse is
// verified against the stored entry.
func Key(raw []float64, tolerance, density int) uint64 {
	var buf [8]byte

	d := xxhash.New()

	binary.LittleEndian.PutUint64(buf[:], uint64(density))
	_, _ = d.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], uint64(tolerance))
	_, _ = d.Write(buf[:])

	for _, v := range raw {
		binary.LittleEndian.PutUint64(buf[:], valueBits(v))
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

func (c *Cache) Lookup(raw []float64, tolerance, density int) (*Pair, error) {
	key := Key(raw, tolerance, density)

	if e, ok := c.store.Get(key); ok && e.matches(raw, tolerance, density) {
		c.hits.Add(1)

		return e.Pair, nil
	}

	i, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		if e, ok := c.store.Get(key); ok && e.matches(raw, tolerance, density) {
			c.hits.Add(1)

			return e, nil
		}

		c.misses.Add(1)

		pair, err := c.compute(raw, tolerance, density)
		if err != nil {
			return nil, err
		}

		e := &Entry{
			Raw:       slices.Clone(raw),
			Tolerance: tolerance,
			Density:   density,
			Pair:      pair,
		}

		c.store.Add(key, e)

		c.logger.WithFields(l.IntField("count", len(raw)), l.IntField("tolerance", tolerance),
			l.IntField("density", density)).Debug("curve computed")

		return e, nil
	})
	if err != nil {
		return nil, err
	}

	// nolint:forcetypeassert
	e := i.(*Entry)
	if e.matches(raw, tolerance, density) {
		return e.Pair, nil
	}

	// shared a flight with a colliding series
	c.logger.WithFields(l.StringField("key", strconv.FormatUint(key, 16))).Debug("curve key collision")

	return c.compute(raw, tolerance, density)
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Len:    c.store.Len(),
	}
}

func (c *Cache) Purge() {
	c.store.Purge()
}
