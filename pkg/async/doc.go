// Package async provides small generic helpers for running work in the
// background: a Future for one-shot results and a Debouncer for
// "run this after things calm down" tasks.
//
// # Future
//
// Async starts a function in its own goroutine and immediately returns a
// *Future. Callers wait with Await, AwaitContext or AwaitWithTimeout, or poll
// with IsComplete. WaitAll collects several futures of the same type.
//
//	cfg := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) (backend.InitialConfig, error) {
//	    return reader.FetchInitialConfig(ctx)
//	})
//	res, err := cfg.Await()
//
// # Debouncer
//
// A Debouncer keeps at most one task per key. Every Schedule for a key
// restarts its settle timer; a task that already started sees its context
// cancelled. Forms use one Debouncer per tree, keyed by node and validator,
// to implement debounced async validation:
//
//	d := async.NewDebouncer(ctx)
//	defer d.Stop()
//	d.Schedule("nickname/uniqueness", 100*time.Millisecond, func(ctx context.Context) {
//	    // remote lookup, aborted if ctx is cancelled
//	})
//
// Stop cancels everything and waits for running tasks, which makes it the
// teardown hook for whatever owns the debouncer.
//
// # Error Handling
//
// Futures carry the error returned by the user function, ctx.Err() when the
// context ended first, or ErrTimeout from AwaitWithTimeout.
package async
