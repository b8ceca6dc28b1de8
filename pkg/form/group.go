package form

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Group is a named composite of controls kept in declaration order.
// Group validators see the whole group and run after its children.
type Group struct {
	*node
}

// NewGroup creates a group adopting children in the given order.
// It panics with ErrDuplicateChild when two children share a name and with
// ErrAlreadyAttached when a child already belongs to another parent.
func NewGroup(name string, children []Control, opts ...ControlOption) *Group {
	var o controlOptions
	for _, opt := range opts {
		opt(&o)
	}
	g := &Group{}
	g.node = newNode(name, g, o)

	for _, c := range children {
		cn := c.base()
		if cn.parent != nil {
			panic(fmt.Errorf("%w: %s", ErrAlreadyAttached, cn.name))
		}
		if g.child(cn.name) != nil {
			panic(fmt.Errorf("%w: %s", ErrDuplicateChild, cn.name))
		}
		cn.t.shutdown()
		cn.parent = g.node
		if o.disabled {
			cn.walk(func(d *node) { d.disabled = true })
		}
		g.children = append(g.children, cn)
	}

	g.t.mu.Lock()
	g.t.adopt(g.node)
	g.t.mu.Unlock()
	return g
}

// Get resolves a dotted path such as "period.fromDate" relative to the
// group. Array items are addressed by index ("items.0.name").
func (g *Group) Get(path string) (Control, error) {
	g.t.mu.Lock()
	defer g.t.mu.Unlock()
	n, err := lookup(g.node, path)
	if err != nil {
		return nil, err
	}
	return n.self, nil
}

// Control is Get for paths the caller knows exist. An unknown path is a
// programming error and panics.
func (g *Group) Control(path string) Control {
	c, err := g.Get(path)
	if err != nil {
		panic(err)
	}
	return c
}

// HasErrorAt reports whether the control at path carries code. It panics on an unknown path.
func (g *Group) HasErrorAt(code, path string) bool {
	return g.Control(path).HasError(code)
}

// GetErrorAt returns the payload of code on the control at path. It panics on an unknown path.
func (g *Group) GetErrorAt(code, path string) any {
	return g.Control(path).GetError(code)
}

// RawValue returns the group value including disabled children.
func (g *Group) RawValue() map[string]any {
	g.t.mu.Lock()
	defer g.t.mu.Unlock()
	v, _ := g.rawValue().(map[string]any)
	return v
}

// Add appends c as the last child.
func (g *Group) Add(c Control) error {
	cn := c.base()
	if cn.parent != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, cn.name)
	}
	g.t.mu.Lock()
	dup := g.child(cn.name) != nil
	closed := g.t.closed
	g.t.mu.Unlock()
	if dup {
		return fmt.Errorf("%w: %s", ErrDuplicateChild, cn.name)
	}
	if closed {
		return ErrClosed
	}

	cn.t.shutdown()

	t := g.t
	t.mu.Lock()
	cn.parent = g.node
	g.children = append(g.children, cn)
	t.adopt(cn)
	t.revalidate(g.node, true)
	t.mu.Unlock()
	t.drain()
	return nil
}

// Remove detaches the child named name. Its pending checks are cancelled and
// it becomes a standalone control.
func (g *Group) Remove(name string) error {
	t := g.t
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	cn := g.child(name)
	if cn == nil {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPathNotFound, name)
	}
	g.detach(cn)
	t.revalidate(g.node, true)
	t.mu.Unlock()
	t.drain()
	return nil
}

// Patch sets the values of the named descendant fields. Keys are dotted
// paths; every path is resolved before anything changes.
func (g *Group) Patch(values map[string]any) error {
	return g.assign(values, true)
}

// Reset resets every field in the group. Fields named in values take that
// value; the rest fall back to their initial value when non-nullable and nil
// otherwise. Dirty flags are cleared.
func (g *Group) Reset(values map[string]any) error {
	return g.assign(values, false)
}

func (g *Group) assign(values map[string]any, patch bool) error {
	t := g.t
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	targets := make(map[*Field]any, len(values))
	for path, v := range values {
		n, err := lookup(g.node, path)
		if err != nil {
			t.mu.Unlock()
			return err
		}
		f, ok := n.self.(*Field)
		if !ok {
			t.mu.Unlock()
			return fmt.Errorf("%w: %s is not a field", ErrPathNotFound, path)
		}
		targets[f] = v
	}

	g.walk(func(d *node) {
		f, ok := d.self.(*Field)
		if !ok {
			return
		}
		v, named := targets[f]
		switch {
		case named:
		case patch:
			return
		case f.nonNullable:
			v = f.initial
		default:
			v = nil
		}
		f.val = v
		f.dirty = patch
		if f.accessor != nil {
			acc := f.accessor
			t.enqueue(func() { acc.WriteValue(v) })
		}
	})
	for _, c := range g.children {
		g.revalidateTree(c)
	}
	t.revalidate(g.node, true)
	t.mu.Unlock()
	t.drain()
	return nil
}

// revalidateTree revalidates descendants bottom-up, emitting value events.
func (g *Group) revalidateTree(n *node) {
	for _, c := range n.children {
		g.revalidateTree(c)
	}
	changed := g.t.validate(n)
	g.t.emit(n, EventValueChanged)
	if changed {
		g.t.emit(n, EventStatusChanged)
	}
}

func (g *Group) child(name string) *node {
	for _, c := range g.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// detach cuts cn loose from its parent onto a fresh standalone tree.
// The caller holds the lock of cn's current tree.
func (n *node) detach(cn *node) {
	t := n.t
	t.cancelTree(cn)
	if i := slices.Index(n.children, cn); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	cn.parent = nil
	fresh := newStandaloneTree()
	cn.walk(func(d *node) {
		d.t = fresh
		clear(d.asyncOut)
	})
	fresh.mu.Lock()
	fresh.validateTree(cn)
	fresh.mu.Unlock()
}

func lookup(root *node, path string) (*node, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrPathNotFound)
	}
	cur := root
	for seg := range strings.SplitSeq(path, ".") {
		next := findChild(cur, seg)
		if next == nil {
			return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
		}
		cur = next
	}
	return cur, nil
}

func findChild(n *node, name string) *node {
	if _, ok := n.self.(*Array); ok {
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= len(n.children) {
			return nil
		}
		return n.children[i]
	}
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}
