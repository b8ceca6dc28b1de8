package form

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Control is implemented by *Field, *Group and *Array.
type Control interface {
	Name() string
	// Path is the dotted path from the tree root, empty for the root itself.
	Path() string
	Value() any
	Status() Status
	Valid() bool
	Errors() validator.Outcome
	HasError(code string) bool
	GetError(code string) any
	Warnings() []string
	Enabled() bool
	Enable()
	Disable()
	Dirty() bool
	Children() []Control

	AddValidators(vs ...validator.Validator)
	RemoveValidators(ids ...string)
	HasValidator(id string) bool
	AddAsyncValidators(vs ...validator.AsyncValidator)
	RemoveAsyncValidators(ids ...string)

	// OnChange registers fn for value and status events of this control.
	// Listeners run outside the form lock and may mutate the form, but must
	// not call Form.Close or Form.WaitIdle.
	OnChange(fn func(Event)) (unsubscribe func())

	base() *node
}

type listener struct {
	id uint64
	fn func(Event)
}

// node holds the state shared by every control kind. All fields are guarded
// by t.mu; t itself only changes while the node is being adopted, and a
// control must not be used concurrently with its adoption.
type node struct {
	t      *tree
	id     uint64
	name   string
	parent *node
	self   Control

	children []*node

	disabled bool
	dirty    bool

	validators []validator.Validator
	asyncVals  []validator.AsyncValidator
	warnRules  []validator.WarningRule

	syncOut  validator.Outcome
	asyncOut map[string]validator.Outcome
	// checks maps an async validator id to the generation of its current
	// check. A result is applied only while its generation is still here.
	checks   map[string]uint64
	warnings []string
	status   Status

	listeners    []listener
	nextListener uint64
}

func newNode(name string, self Control, o controlOptions) *node {
	n := &node{
		id:       nodeIDs.Add(1),
		name:     name,
		self:     self,
		disabled: o.disabled,
		asyncOut: make(map[string]validator.Outcome),
		checks:   make(map[string]uint64),
		status:   StatusValid,
	}
	n.validators = appendValidators(nil, o.validators)
	n.asyncVals = appendAsync(nil, o.async)
	n.warnRules = o.warnings
	n.t = newStandaloneTree()
	return n
}

func (n *node) base() *node { return n }

func (n *node) Name() string {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.name
}

func (n *node) Path() string {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.path()
}

func (n *node) Value() any {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.value()
}

func (n *node) Status() Status {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.status
}

func (n *node) Valid() bool {
	return n.Status() == StatusValid
}

// Errors returns the merged sync and settled async outcome of this control
// alone. Children's errors are not included.
func (n *node) Errors() validator.Outcome {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.errors()
}

func (n *node) HasError(code string) bool {
	return n.Errors().Has(code)
}

func (n *node) GetError(code string) any {
	return n.Errors().Get(code)
}

func (n *node) Warnings() []string {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return slices.Clone(n.warnings)
}

func (n *node) Enabled() bool {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return !n.disabled
}

func (n *node) Dirty() bool {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.isDirty()
}

func (n *node) Children() []Control {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	out := make([]Control, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c.self)
	}
	return out
}

// Enable enables the control and all its descendants and revalidates them.
func (n *node) Enable() { n.setDisabled(false) }

// Disable disables the control and all its descendants. Their errors are
// cleared and pending async checks are cancelled.
func (n *node) Disable() { n.setDisabled(true) }

func (n *node) setDisabled(disabled bool) {
	t := n.t
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	n.walk(func(d *node) {
		if d.disabled == disabled {
			return
		}
		d.disabled = disabled
		if f, ok := d.self.(*Field); ok && f.accessor != nil {
			acc := f.accessor
			t.enqueue(func() { acc.SetDisabledState(disabled) })
		}
	})
	for _, c := range n.children {
		t.validateTree(c)
	}
	t.revalidate(n, true)
	t.mu.Unlock()
	t.drain()
}

// AddValidators attaches validators, skipping ids that are already attached.
func (n *node) AddValidators(vs ...validator.Validator) {
	n.mutate(func() { n.validators = appendValidators(n.validators, vs) })
}

func (n *node) RemoveValidators(ids ...string) {
	n.mutate(func() {
		n.validators = slices.DeleteFunc(n.validators, func(v validator.Validator) bool {
			return slices.Contains(ids, v.ID)
		})
	})
}

func (n *node) HasValidator(id string) bool {
	n.t.mu.Lock()
	defer n.t.mu.Unlock()
	return n.hasValidator(id)
}

// AddAsyncValidators attaches async validators, skipping ids that are already attached.
func (n *node) AddAsyncValidators(vs ...validator.AsyncValidator) {
	n.mutate(func() { n.asyncVals = appendAsync(n.asyncVals, vs) })
}

// RemoveAsyncValidators detaches async validators, cancelling their pending
// checks and dropping the codes they contributed.
func (n *node) RemoveAsyncValidators(ids ...string) {
	t := n.t
	t.mu.Lock()
	n.asyncVals = slices.DeleteFunc(n.asyncVals, func(v validator.AsyncValidator) bool {
		return slices.Contains(ids, v.ID)
	})
	for _, id := range ids {
		t.cancelCheck(n, id)
		delete(n.asyncOut, id)
	}
	t.refresh(n)
	t.mu.Unlock()
	t.drain()
}

func (n *node) OnChange(fn func(Event)) func() {
	t := n.t
	t.mu.Lock()
	defer t.mu.Unlock()
	n.nextListener++
	id := n.nextListener
	n.listeners = append(n.listeners, listener{id: id, fn: fn})
	return func() {
		n.t.mu.Lock()
		defer n.t.mu.Unlock()
		n.listeners = slices.DeleteFunc(n.listeners, func(l listener) bool { return l.id == id })
	}
}

// mutate applies fn under the lock and reruns this control's validators.
func (n *node) mutate(fn func()) {
	t := n.t
	t.mu.Lock()
	fn()
	if t.validate(n) {
		t.emit(n, EventStatusChanged)
	}
	if n.parent != nil {
		t.refresh(n.parent)
	}
	t.mu.Unlock()
	t.drain()
}

func (n *node) path() string {
	if n.parent == nil {
		return ""
	}
	var parts []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	slices.Reverse(parts)
	return strings.Join(parts, ".")
}

// value is the control's value with disabled descendants left out.
func (n *node) value() any {
	switch c := n.self.(type) {
	case *Field:
		return c.val
	case *Array:
		out := make([]any, 0, len(n.children))
		for _, ch := range n.children {
			if !ch.disabled {
				out = append(out, ch.value())
			}
		}
		return out
	default:
		out := make(map[string]any, len(n.children))
		for _, ch := range n.children {
			if !ch.disabled {
				out[ch.name] = ch.value()
			}
		}
		return out
	}
}

// rawValue is the value including disabled descendants.
func (n *node) rawValue() any {
	switch c := n.self.(type) {
	case *Field:
		return c.val
	case *Array:
		out := make([]any, 0, len(n.children))
		for _, ch := range n.children {
			out = append(out, ch.rawValue())
		}
		return out
	default:
		out := make(map[string]any, len(n.children))
		for _, ch := range n.children {
			out[ch.name] = ch.rawValue()
		}
		return out
	}
}

func (n *node) errors() validator.Outcome {
	if n.disabled {
		return nil
	}
	out := n.syncOut.Clone()
	for _, v := range n.asyncVals {
		out = out.Merge(n.asyncOut[v.ID])
	}
	return out.Clone()
}

func (n *node) isDirty() bool {
	if n.dirty {
		return true
	}
	for _, c := range n.children {
		if c.isDirty() {
			return true
		}
	}
	return false
}

func (n *node) hasValidator(id string) bool {
	return slices.ContainsFunc(n.validators, func(v validator.Validator) bool { return v.ID == id }) ||
		slices.ContainsFunc(n.asyncVals, func(v validator.AsyncValidator) bool { return v.ID == id })
}

func (n *node) validatorIDs() []string {
	ids := make([]string, 0, len(n.validators)+len(n.asyncVals))
	for _, v := range n.validators {
		ids = append(ids, v.ID)
	}
	for _, v := range n.asyncVals {
		ids = append(ids, v.ID)
	}
	return ids
}

// snapshot builds the detached view validators run against.
func (n *node) snapshot() *validator.Snapshot {
	s := &validator.Snapshot{
		NodeName:     n.name,
		NodeValue:    n.value(),
		ValidatorIDs: n.validatorIDs(),
	}
	if len(n.children) > 0 {
		s.Children = make(map[string]*validator.Snapshot, len(n.children))
		for _, c := range n.children {
			s.Children[c.name] = c.snapshot()
		}
	}
	return s
}

// computeStatus derives the status from own outcomes and enabled children.
func (n *node) computeStatus() Status {
	if n.disabled {
		return StatusDisabled
	}
	if !n.syncOut.Passed() {
		return StatusInvalid
	}
	pending := len(n.checks) > 0
	for _, c := range n.children {
		switch c.status {
		case StatusInvalid:
			return StatusInvalid
		case StatusPending:
			pending = true
		}
	}
	if pending {
		return StatusPending
	}
	for _, out := range n.asyncOut {
		if !out.Passed() {
			return StatusInvalid
		}
	}
	return StatusValid
}

// walk visits n and its descendants parent-first.
func (n *node) walk(fn func(*node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

func appendValidators(dst, vs []validator.Validator) []validator.Validator {
	for _, v := range vs {
		if !slices.ContainsFunc(dst, func(e validator.Validator) bool { return e.ID == v.ID }) {
			dst = append(dst, v)
		}
	}
	return dst
}

func appendAsync(dst, vs []validator.AsyncValidator) []validator.AsyncValidator {
	for _, v := range vs {
		if !slices.ContainsFunc(dst, func(e validator.AsyncValidator) bool { return e.ID == v.ID }) {
			dst = append(dst, v)
		}
	}
	return dst
}
