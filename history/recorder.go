package history

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libeasygo/timespan"
	"github.com/spf13/cast"
)

// Recorder buckets price ticks into fixed time spans at several speeds. A
// speed is a multiple of the base duration; speed 5 with a one minute base
// yields five minute buckets. Closed buckets become the sample series drawn
// by the line graph.
type Recorder struct {
	logger l.Wrapper

	cfg     Config
	storage Storage

	speedTimeSpans map[int]*timespan.TimeSpan

	routineMan routineman.RoutineMan

	historyLock sync.RWMutex
	history     map[string][]*Point

	buckets *cache.Cache

	now func() time.Time
}

func NewRecorder(cfg Config, storage Storage, logger l.Wrapper) *Recorder {
	r := newRecorder(cfg, storage, logger, time.Now)

	r.routineMan = routineman.NewRoutineMan(context.Background(), r.logger)
	r.routineMan.StartRoutine(r.statisticRoutine, "statisticRoutine")

	return r
}

func newRecorder(cfg Config, storage Storage, logger l.Wrapper, now func() time.Time) *Recorder {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "Recorder"))

	if cfg.BaseDuration <= 0 {
		cfg.BaseDuration = time.Minute
	}

	if cfg.MaxPointCount <= 0 {
		cfg.MaxPointCount = 1440
	}

	if len(cfg.Speeds) == 0 {
		cfg.Speeds = []int{1}
	}

	if storage == nil {
		storage = NewMemStorage()
	}

	speeds := make([]int, 0, len(cfg.Speeds))
	speedTimeSpans := make(map[int]*timespan.TimeSpan)

	for _, speed := range cfg.Speeds {
		if speed <= 0 {
			logger.WithFields(l.IntField("speed", speed)).Error("invalid speed, skipped")

			continue
		}

		speeds = append(speeds, speed)
		speedTimeSpans[speed] = timespan.NewTimeSpan(cfg.BaseDuration * time.Duration(speed))
	}

	cfg.Speeds = speeds

	cacheDuration := cfg.BaseDuration * 2
	if cacheDuration < time.Second {
		cacheDuration = time.Second
	}

	r := &Recorder{
		logger:         logger,
		cfg:            cfg,
		storage:        storage,
		speedTimeSpans: speedTimeSpans,
		history:        make(map[string][]*Point),
		buckets:        cache.New(cacheDuration, cacheDuration),
		now:            now,
	}

	r.load()

	return r
}

func (r *Recorder) TriggerStop() {
	if r.routineMan != nil {
		r.routineMan.TriggerStop()
	}
}

func (r *Recorder) Wait() {
	if r.routineMan != nil {
		r.routineMan.Wait()
	}
}

func (r *Recorder) load() {
	for _, key := range r.cfg.Keys {
		for _, speed := range r.cfg.Speeds {
			storageKey := genStorageKey(speed, key)

			ps, err := r.storage.Load(storageKey)
			if err != nil {
				continue
			}

			r.history[storageKey] = ps
		}
	}
}

func genStorageKey(speed int, key string) string {
	if speed == 1 {
		return key
	}

	return fmt.Sprintf("%d-%s", speed, key)
}

func genBucketKey(speed int, label string) string {
	return fmt.Sprintf("%d:%s", speed, label)
}

func (r *Recorder) bucketAt(speed int, t time.Time) *sync.Map {
	key := genBucketKey(speed, r.speedTimeSpans[speed].GetLabel(t))

	if i, ok := r.buckets.Get(key); ok {
		m, _ := i.(*sync.Map)

		return m
	}

	m := &sync.Map{}

	if err := r.buckets.Add(key, m, r.cfg.BaseDuration*time.Duration(speed)*2); err != nil {
		// lost the race against another writer
		if i, ok := r.buckets.Get(key); ok {
			m, _ = i.(*sync.Map)
		}
	}

	return m
}

func (r *Recorder) SetPrice(key string, price float64) error {
	return r.SetPriceAt(key, price, r.now())
}

func (r *Recorder) SetPriceAt(key string, price float64, at time.Time) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}

	for _, speed := range r.cfg.Speeds {
		m := r.bucketAt(speed, at)

		for {
			v, loaded := m.LoadOrStore(key, newAvgData(price))
			if !loaded {
				break
			}

			// nolint:forcetypeassert
			old := v.(avgData)
			if m.CompareAndSwap(key, old, old.Combine(price)) {
				break
			}
		}
	}

	return nil
}

func (r *Recorder) statisticRoutine(ctx context.Context, _ func() bool) {
	speedLabels := make(map[int]string)

	for _, speed := range r.cfg.Speeds {
		speedLabels[speed] = r.speedTimeSpans[speed].GetLabel(r.now())
	}

	sleepDuration := time.Second * 10
	if r.cfg.BaseDuration/2 < sleepDuration {
		sleepDuration = r.cfg.BaseDuration / 2
	}

	loop := true

	for loop {
		select {
		case <-ctx.Done():
			loop = false

			continue
		case <-time.After(sleepDuration):
			for _, speed := range r.cfg.Speeds {
				oldLabel := speedLabels[speed]
				newLabel := r.speedTimeSpans[speed].GetLabel(r.now())

				if oldLabel == newLabel {
					continue
				}

				speedLabels[speed] = newLabel

				r.flush(speed, oldLabel)
			}
		}
	}
}

// flush closes the bucket with the given label, appending one point per key.
func (r *Recorder) flush(speed int, label string) {
	bucketKey := genBucketKey(speed, label)

	i, ok := r.buckets.Get(bucketKey)
	if !ok {
		return
	}

	r.buckets.Delete(bucketKey)

	m, ok := i.(*sync.Map)
	if !ok {
		r.logger.Fatal("logic error: not a map")

		return
	}

	t, _ := r.speedTimeSpans[speed].Label2Time(label)

	m.Range(func(key, value any) bool {
		storageKey := genStorageKey(speed, cast.ToString(key))

		// nolint:forcetypeassert
		point := &Point{
			At:    t.Unix(),
			Value: value.(avgData).Calc(),
		}

		r.historyLock.Lock()

		ps := append(r.history[storageKey], point)
		if len(ps) > r.cfg.MaxPointCount {
			ps = append([]*Point{}, ps[len(ps)-r.cfg.MaxPointCount:]...)
		}

		r.history[storageKey] = ps
		snapshot := slices.Clone(ps)

		r.historyLock.Unlock()

		if err := r.storage.Save(storageKey, snapshot); err != nil {
			r.logger.WithFields(l.ErrorField(err), l.StringField("key", storageKey)).Error("save history failed")
		}

		return true
	})
}

// Series returns up to count closed buckets for key, oldest first. A missing
// bucket repeats the previous value; missing buckets before the first known
// value are dropped.
func (r *Recorder) Series(speed int, key string, count int) (timestamps []int64, values []float64) {
	ts := r.speedTimeSpans[speed]
	if ts == nil || count <= 0 {
		return
	}

	current, _ := ts.Label2Time(ts.GetLabel(r.now()))
	step := r.cfg.BaseDuration * time.Duration(speed)

	r.historyLock.RLock()

	ps := r.history[genStorageKey(speed, key)]
	byAt := make(map[int64]float64, len(ps))

	for _, p := range ps {
		byAt[p.At] = p.Value
	}

	r.historyLock.RUnlock()

	var (
		last float64
		have bool
	)

	for idx := count; idx >= 1; idx-- {
		at := current.Add(-step * time.Duration(idx)).Unix()

		v, ok := byAt[at]
		if !ok {
			if !have {
				continue
			}

			v = last
		}

		have = true
		last = v

		timestamps = append(timestamps, at)
		values = append(values, v)
	}

	return
}
