package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// RootPath labels the root group in reports and submit errors.
const RootPath = "root"

// Form owns a control tree: its lock, its async checks and their teardown.
type Form struct {
	id        string
	root      *Group
	t         *tree
	stopAfter func() bool
}

// New binds root to a new form and validates the whole tree. Async checks
// start from here on. It panics with ErrAlreadyAttached when root is a
// child of another control.
func New(root *Group, opts ...Option) *Form {
	o := formOptions{
		ctx:     context.Background(),
		logger:  logger.Noop(),
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	rn := root.base()
	if rn.parent != nil {
		panic(fmt.Errorf("%w: %s", ErrAlreadyAttached, rn.name))
	}
	rn.t.shutdown()

	id := uuid.NewString()
	log := o.logger.With(logger.Component("form"), logger.FormID(id))
	t := newTree(o.ctx, log, o.metrics)
	f := &Form{id: id, root: root, t: t}

	t.mu.Lock()
	t.adopt(rn)
	f.stopAfter = context.AfterFunc(o.ctx, f.Close)
	t.mu.Unlock()
	t.drain()

	log.DebugContext(o.ctx, "form created", logger.Status(root.Status().String()))
	return f
}

// ID returns the form instance identifier.
func (f *Form) ID() string { return f.id }

// Root returns the root group.
func (f *Form) Root() *Group { return f.root }

// Status returns the root status.
func (f *Form) Status() Status { return f.root.Status() }

// Valid reports whether the whole form is valid. A pending form is not valid.
func (f *Form) Valid() bool { return f.root.Valid() }

// Submit gates submission. It returns ErrPending while async checks run,
// validator.ValidationErrors listing every error by path when the form is
// invalid, and nil otherwise. Warnings never block.
func (f *Form) Submit() error {
	t := f.t
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	switch f.root.status {
	case StatusPending:
		return ErrPending
	case StatusInvalid:
		var errs validator.ValidationErrors
		walkNodes(f.root.node, RootPath, func(path string, n *node) {
			errs = append(errs, validator.OutcomeErrors(path, n.errors())...)
		})
		return errs
	default:
		return nil
	}
}

// WaitIdle blocks until no async check is pending and every queued event
// has been delivered, or ctx ends. It must not be called from a listener.
func (f *Form) WaitIdle(ctx context.Context) error {
	for {
		f.t.mu.Lock()
		if !f.t.busy() {
			f.t.mu.Unlock()
			return nil
		}
		idle := f.t.idle
		f.t.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels every pending async check, waits for running ones and stops
// event delivery. No outcome is applied after Close returns. Later mutations
// return ErrClosed or are ignored. It must not be called from a listener.
func (f *Form) Close() {
	f.t.mu.Lock()
	stop := f.stopAfter
	f.t.mu.Unlock()
	if stop != nil {
		stop()
	}
	f.t.shutdown()
}

// Walk visits c and its descendants parent-first in declaration order. The
// root is reported as RootPath and descendants as "root.<name>...".
func Walk(c Control, fn func(path string, c Control)) {
	walkControl(c, RootPath, fn)
}

func walkControl(c Control, path string, fn func(string, Control)) {
	fn(path, c)
	for _, ch := range c.Children() {
		walkControl(ch, path+"."+ch.Name(), fn)
	}
}

func walkNodes(n *node, path string, fn func(string, *node)) {
	fn(path, n)
	for _, c := range n.children {
		walkNodes(c, path+"."+c.name, fn)
	}
}

// JoinPath prefixes a control path with RootPath.
func JoinPath(path string) string {
	if path == "" {
		return RootPath
	}
	return strings.Join([]string{RootPath, path}, ".")
}
