package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to end, whichever comes first.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-f.done:
		return f.result, f.err
	case <-t.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in its own goroutine and returns a Future for its result.
// A context that is already done completes the Future with ctx.Err() without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll waits for all futures and returns their results in order.
// The first error encountered, in argument order, is returned.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// Debouncer runs at most one pending task per key. Scheduling a key again
// stops the previous timer, or cancels the context of a task that already
// started, so only the latest schedule for a key can run to completion.
type Debouncer struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   map[string]*task
	seq     uint64
	wg      sync.WaitGroup
	stopped bool
}

type task struct {
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewDebouncer returns a Debouncer whose tasks are cancelled when parent ends or Stop is called.
func NewDebouncer(parent context.Context) *Debouncer {
	ctx, cancel := context.WithCancel(parent)
	return &Debouncer{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(map[string]*task),
	}
}

// Schedule arranges for fn to run after delay unless key is scheduled again,
// cancelled, or the debouncer is stopped first. It returns false when the
// debouncer is already stopped.
func (d *Debouncer) Schedule(key string, delay time.Duration, fn func(ctx context.Context)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}
	d.cancelLocked(key)

	d.seq++
	ctx, cancel := context.WithCancel(d.ctx)
	t := &task{seq: d.seq, cancel: cancel}
	d.tasks[key] = t

	d.wg.Add(1)
	t.timer = time.AfterFunc(delay, func() {
		defer d.wg.Done()
		defer d.finish(key, t)
		if ctx.Err() != nil {
			return
		}
		fn(ctx)
	})
	return true
}

// Cancel drops the pending or running task for key. It reports whether there was one.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked(key)
}

// Pending reports whether key has a task that has not finished yet.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.tasks[key]
	return ok
}

// Stop cancels every task and waits for running ones to return.
// It is safe to call more than once; it must not be called from inside a task.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for key := range d.tasks {
			d.cancelLocked(key)
		}
		d.cancel()
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Debouncer) cancelLocked(key string) bool {
	t, ok := d.tasks[key]
	if !ok {
		return false
	}
	delete(d.tasks, key)
	t.cancel()
	if t.timer.Stop() {
		// the callback will never run, so release its slot here
		d.wg.Done()
	}
	return true
}

func (d *Debouncer) finish(key string, t *task) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cur, ok := d.tasks[key]; ok && cur.seq == t.seq {
		delete(d.tasks, key)
	}
	t.cancel()
}
