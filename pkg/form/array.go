package form

import (
	"fmt"
	"strconv"
)

// Array is an ordered list of controls named by their index.
type Array struct {
	*node
}

// NewArray creates an array adopting items in order. Item names are
// replaced by their index. It panics with ErrAlreadyAttached when an item
// already has a parent.
func NewArray(name string, items []Control, opts ...ControlOption) *Array {
	var o controlOptions
	for _, opt := range opts {
		opt(&o)
	}
	a := &Array{}
	a.node = newNode(name, a, o)

	for i, c := range items {
		cn := c.base()
		if cn.parent != nil {
			panic(fmt.Errorf("%w: %s", ErrAlreadyAttached, cn.name))
		}
		cn.t.shutdown()
		cn.parent = a.node
		cn.name = strconv.Itoa(i)
		if o.disabled {
			cn.walk(func(d *node) { d.disabled = true })
		}
		a.children = append(a.children, cn)
	}

	a.t.mu.Lock()
	a.t.adopt(a.node)
	a.t.mu.Unlock()
	return a
}

// Len returns the number of items.
func (a *Array) Len() int {
	a.t.mu.Lock()
	defer a.t.mu.Unlock()
	return len(a.children)
}

// At returns the item at index i.
func (a *Array) At(i int) (Control, error) {
	a.t.mu.Lock()
	defer a.t.mu.Unlock()
	if i < 0 || i >= len(a.children) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return a.children[i].self, nil
}

// Push appends c to the array.
func (a *Array) Push(c Control) error {
	cn := c.base()
	if cn.parent != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, cn.name)
	}
	if a.isClosed() {
		return ErrClosed
	}
	cn.t.shutdown()

	t := a.t
	t.mu.Lock()
	cn.parent = a.node
	cn.name = strconv.Itoa(len(a.children))
	a.children = append(a.children, cn)
	t.adopt(cn)
	t.revalidate(a.node, true)
	t.mu.Unlock()
	t.drain()
	return nil
}

// RemoveAt detaches the item at index i and renumbers the items after it.
// Pending checks of the removed item are cancelled.
func (a *Array) RemoveAt(i int) error {
	t := a.t
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	if i < 0 || i >= len(a.children) {
		t.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	a.detach(a.children[i])
	for j, c := range a.children {
		c.name = strconv.Itoa(j)
	}
	t.revalidate(a.node, true)
	t.mu.Unlock()
	t.drain()
	return nil
}

// RawValue returns the item values including disabled items.
func (a *Array) RawValue() []any {
	a.t.mu.Lock()
	defer a.t.mu.Unlock()
	v, _ := a.rawValue().([]any)
	return v
}

func (a *Array) isClosed() bool {
	a.t.mu.Lock()
	defer a.t.mu.Unlock()
	return a.t.closed
}
