package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

var nodeIDs atomic.Uint64

// tree owns the lock, event queue and async machinery of one control tree.
// Every standalone control starts with its own tree; adopting it into a
// group, array or form moves it onto the adopter's tree.
type tree struct {
	mu sync.Mutex

	ctx     context.Context
	cancel  context.CancelFunc
	log     *slog.Logger
	metrics Metrics
	deb     *async.Debouncer

	closed     bool
	standalone bool
	gen        uint64
	inflight   []*async.Future[validator.Outcome]

	queue    []func()
	draining bool

	pending    int
	idle       chan struct{}
	idleClosed bool
}

func newTree(ctx context.Context, log *slog.Logger, m Metrics) *tree {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logger.Noop()
	}
	if m == nil {
		m = noopMetrics{}
	}
	ctx, cancel := context.WithCancel(ctx)
	t := &tree{
		ctx:        ctx,
		cancel:     cancel,
		log:        log,
		metrics:    m,
		deb:        async.NewDebouncer(ctx),
		idle:       make(chan struct{}),
		idleClosed: true,
	}
	close(t.idle)
	return t
}

// newStandaloneTree returns the tree of a control that is not part of a
// form. It validates synchronously but never starts async checks.
func newStandaloneTree() *tree {
	t := newTree(nil, nil, nil)
	t.standalone = true
	return t
}

// adopt moves the subtree rooted at n onto t and validates it bottom-up.
// The caller holds t.mu and has already shut n's previous tree down.
func (t *tree) adopt(n *node) {
	n.walk(func(d *node) {
		d.t = t
		clear(d.checks)
		clear(d.asyncOut)
	})
	t.validateTree(n)
}

// shutdown cancels every pending check and waits for running ones.
// It must not be called with t.mu held or from inside a listener.
func (t *tree) shutdown() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.queue = nil
	t.pending = 0
	t.updateIdle()
	futures := t.inflight
	t.inflight = nil
	t.mu.Unlock()

	t.cancel()
	t.deb.Stop()
	_, _ = async.WaitAll(futures...)
}

// validateTree validates n's descendants and then n itself, emitting status
// events for every control whose status changed.
func (t *tree) validateTree(n *node) {
	for _, c := range n.children {
		t.validateTree(c)
	}
	if t.validate(n) {
		t.emit(n, EventStatusChanged)
	}
}

// revalidate reruns validators of n and each of its ancestors after a value
// change, emitting value events bottom-up.
func (t *tree) revalidate(n *node, valueChanged bool) {
	for cur := n; cur != nil; cur = cur.parent {
		changed := t.validate(cur)
		if valueChanged {
			t.emit(cur, EventValueChanged)
		}
		if changed {
			t.emit(cur, EventStatusChanged)
		}
	}
}

// refresh recomputes the status of n and its ancestors without rerunning
// validators.
func (t *tree) refresh(n *node) {
	for cur := n; cur != nil; cur = cur.parent {
		if st := cur.computeStatus(); st != cur.status {
			cur.status = st
			t.emit(cur, EventStatusChanged)
		}
	}
}

// validate runs n's sync validators and warning rules and, when they pass,
// schedules its async validators. Checks already pending for n are
// superseded. It reports whether n's status changed.
func (t *tree) validate(n *node) bool {
	t.cancelChecks(n)
	clear(n.asyncOut)
	n.syncOut = nil
	n.warnings = nil

	if !n.disabled {
		snap := n.snapshot()
		for _, v := range n.validators {
			out, err := validator.Safe(v, snap)
			if err != nil {
				t.fault(n, v.ID, err)
				continue
			}
			n.syncOut = n.syncOut.Merge(out)
		}
		if len(n.warnRules) > 0 && !validator.IsEmpty(snap.NodeValue) && !n.syncOut.Has(validator.CodeRequired) {
			for _, w := range n.warnRules {
				msgs, err := validator.SafeWarning(w, snap)
				if err != nil {
					t.fault(n, w.ID, err)
					continue
				}
				n.warnings = append(n.warnings, msgs...)
			}
		}
		if n.syncOut.Passed() {
			for _, v := range n.asyncVals {
				t.schedule(n, v, snap)
			}
		}
	}

	st := n.computeStatus()
	if st == n.status {
		return false
	}
	n.status = st
	return true
}

func (t *tree) schedule(n *node, v validator.AsyncValidator, snap validator.Control) {
	if t.closed || t.standalone {
		return
	}
	t.gen++
	gen := t.gen
	n.checks[v.ID] = gen
	t.pending++
	t.updateIdle()
	t.metrics.CheckScheduled(v.ID)

	started := time.Now()
	t.deb.Schedule(checkKey(n, v.ID), v.Settle, func(ctx context.Context) {
		t.runCheck(ctx, n, v, gen, snap, started)
	})
}

// runCheck is the debouncer task of one async check. The remote call runs on
// its own goroutine so a superseded check releases its debouncer slot without
// waiting for the call to return.
func (t *tree) runCheck(ctx context.Context, n *node, v validator.AsyncValidator, gen uint64, snap validator.Control, started time.Time) {
	t.mu.Lock()
	if !t.current(n, v.ID, gen) {
		t.mu.Unlock()
		return
	}
	fut := async.Async(ctx, snap, func(ctx context.Context, c validator.Control) (validator.Outcome, error) {
		return validator.RunAsync(ctx, v, c)
	})
	t.inflight = slices.DeleteFunc(t.inflight, (*async.Future[validator.Outcome]).IsComplete)
	t.inflight = append(t.inflight, fut)
	t.mu.Unlock()

	out, err := fut.AwaitContext(ctx)

	t.mu.Lock()
	if ctx.Err() != nil || !t.current(n, v.ID, gen) {
		t.mu.Unlock()
		return
	}
	delete(n.checks, v.ID)
	t.pending--
	if err != nil {
		t.fault(n, v.ID, err)
		out = nil
	}
	if out.Passed() {
		delete(n.asyncOut, v.ID)
	} else {
		n.asyncOut[v.ID] = out
	}
	t.metrics.CheckApplied(v.ID, !out.Passed(), time.Since(started))
	t.refresh(n)
	t.updateIdle()
	t.mu.Unlock()

	t.drain()
}

// current reports whether the check with generation gen is still the one n waits for.
func (t *tree) current(n *node, id string, gen uint64) bool {
	return !t.closed && n.t == t && n.checks[id] == gen
}

func (t *tree) cancelChecks(n *node) {
	for id := range n.checks {
		t.cancelCheck(n, id)
	}
}

func (t *tree) cancelCheck(n *node, id string) {
	if _, ok := n.checks[id]; !ok {
		return
	}
	delete(n.checks, id)
	if t.closed {
		return
	}
	t.deb.Cancel(checkKey(n, id))
	t.pending--
	t.updateIdle()
	t.metrics.CheckSuperseded(id)
	t.log.DebugContext(t.ctx, "async check superseded",
		logger.Path(n.path()),
		logger.ValidatorID(id),
	)
}

// cancelTree cancels the checks of n and its descendants.
func (t *tree) cancelTree(n *node) {
	n.walk(t.cancelChecks)
}

func (t *tree) fault(n *node, id string, err error) {
	msg := "async check failed, treating as pass"
	if errors.Is(err, validator.ErrValidatorFault) {
		msg = "validator panicked, treating as pass"
	}
	t.metrics.ValidatorFault(id)
	t.log.ErrorContext(t.ctx, msg,
		logger.Path(n.path()),
		logger.ValidatorID(id),
		logger.Error(err),
	)
}

// emit queues an event for n's listeners, if it has any.
func (t *tree) emit(n *node, kind EventKind) {
	if len(n.listeners) == 0 {
		return
	}
	ev := Event{Kind: kind, Path: n.path(), Value: n.value(), Status: n.status}
	for _, l := range n.listeners {
		fn := l.fn
		t.enqueue(func() { fn(ev) })
	}
}

func (t *tree) enqueue(fn func()) {
	if t.closed {
		return
	}
	t.queue = append(t.queue, fn)
	t.updateIdle()
}

// drain delivers queued callbacks in order outside the lock. Only one
// goroutine drains at a time; callbacks queued by listeners are picked up by
// the active drainer.
func (t *tree) drain() {
	t.mu.Lock()
	if t.draining {
		t.mu.Unlock()
		return
	}
	t.draining = true
	for len(t.queue) > 0 {
		fn := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()
		t.deliver(fn)
		t.mu.Lock()
	}
	t.draining = false
	t.updateIdle()
	t.mu.Unlock()
}

func (t *tree) deliver(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.log.ErrorContext(t.ctx, "form listener panicked",
				logger.Error(fmt.Errorf("%v", r)),
			)
		}
	}()
	fn()
}

func (t *tree) busy() bool {
	return t.pending > 0 || t.draining || len(t.queue) > 0
}

// updateIdle keeps t.idle open while the tree is busy and closed otherwise.
func (t *tree) updateIdle() {
	switch busy := t.busy(); {
	case busy && t.idleClosed:
		t.idle = make(chan struct{})
		t.idleClosed = false
	case !busy && !t.idleClosed:
		close(t.idle)
		t.idleClosed = true
	}
}

func checkKey(n *node, id string) string {
	return fmt.Sprintf("%d/%s", n.id, id)
}
