package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/spf13/cast"

	"github.com/sgostarter/libchart/phase"
)

type Fetch[V any] func(ctx context.Context, request string) (V, error)

type Observer[V any] func(viewID string, p phase.Phase[V])

type binding[V any] struct {
	request    string
	generation uint64
	cancel     context.CancelFunc
	phase      phase.Phase[V]
}

// Loader runs one fetch per bound view. Binding a view to a new request
// cancels the load in flight for it, and a result is only applied while its
// binding is still current, so the last binding wins. Failures are final
// until Retry; there is no backoff.
type Loader[V any] struct {
	logger l.Wrapper
	fetch  Fetch[V]

	ctx        context.Context
	ctxCancel  context.CancelFunc
	routineMan routineman.RoutineMan

	lock      sync.Mutex
	stopped   bool
	bindings  map[string]*binding[V]
	observers []Observer[V]
}

func New[V any](fetch Fetch[V], logger l.Wrapper) *Loader[V] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "Loader"))

	ctx, cancel := context.WithCancel(context.Background())

	return &Loader[V]{
		logger:     logger,
		fetch:      fetch,
		ctx:        ctx,
		ctxCancel:  cancel,
		routineMan: routineman.NewRoutineMan(ctx, logger),
		bindings:   make(map[string]*binding[V]),
	}
}

// Subscribe registers fn for every phase change. fn runs on the goroutine
// that caused the change and must not block.
func (ld *Loader[V]) Subscribe(fn Observer[V]) {
	if fn == nil {
		return
	}

	ld.lock.Lock()
	defer ld.lock.Unlock()

	ld.observers = append(ld.observers, fn)
}

// Bind points viewID at request. Binding the request a view already has is a
// no-op.
func (ld *Loader[V]) Bind(viewID, request string) error {
	ld.lock.Lock()

	if ld.stopped {
		ld.lock.Unlock()

		return ErrStopped
	}

	if b, ok := ld.bindings[viewID]; ok && b.request == request {
		ld.lock.Unlock()

		return nil
	}

	return ld.startLocked(viewID, request)
}

// Retry issues the bound request of viewID again.
func (ld *Loader[V]) Retry(viewID string) error {
	ld.lock.Lock()

	if ld.stopped {
		ld.lock.Unlock()

		return ErrStopped
	}

	b, ok := ld.bindings[viewID]
	if !ok {
		ld.lock.Unlock()

		return ErrNotBound
	}

	return ld.startLocked(viewID, b.request)
}

func (ld *Loader[V]) Unbind(viewID string) {
	ld.lock.Lock()
	defer ld.lock.Unlock()

	if b, ok := ld.bindings[viewID]; ok {
		b.cancel()
		delete(ld.bindings, viewID)
	}
}

func (ld *Loader[V]) Phase(viewID string) phase.Phase[V] {
	ld.lock.Lock()
	defer ld.lock.Unlock()

	if b, ok := ld.bindings[viewID]; ok {
		return b.phase
	}

	return phase.Empty[V]()
}

// Stop cancels every load and waits for them to return.
func (ld *Loader[V]) Stop() {
	ld.lock.Lock()

	ld.stopped = true

	for viewID, b := range ld.bindings {
		b.cancel()
		delete(ld.bindings, viewID)
	}

	ld.lock.Unlock()

	ld.ctxCancel()
	ld.routineMan.TriggerStop()
	ld.routineMan.Wait()
}

// startLocked must be called with the lock held; it releases it.
func (ld *Loader[V]) startLocked(viewID, request string) error {
	if old, ok := ld.bindings[viewID]; ok {
		old.cancel()
	}

	ctx, cancel := context.WithCancel(ld.ctx)

	b := &binding[V]{
		request:    request,
		generation: snowflake.ID(),
		cancel:     cancel,
	}

	ld.bindings[viewID] = b
	p := b.phase
	observers := ld.observers

	ld.lock.Unlock()

	ld.notify(observers, viewID, p)

	ld.routineMan.StartRoutine(func(routineCtx context.Context, _ func() bool) {
		stop := context.AfterFunc(routineCtx, cancel)
		defer stop()

		defer cancel()

		v, err := ld.fetch(ctx, request)

		ld.complete(viewID, b.generation, v, err)
	}, "load:"+viewID+":"+cast.ToString(b.generation))

	return nil
}

func (ld *Loader[V]) complete(viewID string, generation uint64, v V, err error) {
	logger := ld.logger.WithFields(l.StringField("viewID", viewID), l.UInt64Field("generation", generation))

	ld.lock.Lock()

	b, ok := ld.bindings[viewID]
	if !ok || b.generation != generation {
		ld.lock.Unlock()

		logger.Debug("superseded result dropped")

		return
	}

	if err != nil {
		b.phase = phase.Failure[V](err)
	} else {
		b.phase = phase.Success(v)
	}

	p := b.phase
	observers := ld.observers

	ld.lock.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.WithFields(l.ErrorField(err)).Error("load failed")
	}

	ld.notify(observers, viewID, p)
}

func (ld *Loader[V]) notify(observers []Observer[V], viewID string, p phase.Phase[V]) {
	for _, fn := range observers {
		fn(viewID, p)
	}
}
