package form

// Field is a leaf control holding a single value.
type Field struct {
	*node

	val         any
	initial     any
	nonNullable bool
	accessor    ValueAccessor
}

// NewField creates a standalone field. It gets validated immediately; async
// checks only start once the field is part of a Form.
func NewField(name string, initial any, opts ...ControlOption) *Field {
	var o controlOptions
	for _, opt := range opts {
		opt(&o)
	}
	f := &Field{val: initial, initial: initial, nonNullable: o.nonNullable}
	f.node = newNode(name, f, o)
	f.t.mu.Lock()
	f.t.validateTree(f.node)
	f.t.mu.Unlock()
	return f
}

// SetValue replaces the value, marks the field dirty and revalidates it and
// its ancestors. Async checks pending for the old value are superseded.
func (f *Field) SetValue(v any) error {
	return f.set(v, true, true)
}

// Reset clears the dirty flag and sets the value to v, or when v is omitted,
// to the initial value for non-nullable fields and nil otherwise.
func (f *Field) Reset(v ...any) error {
	var next any
	switch {
	case len(v) > 0:
		next = v[0]
	case f.nonNullable:
		next = f.initial
	}
	return f.set(next, true, false)
}

func (f *Field) set(v any, echo, dirty bool) error {
	t := f.t
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	f.val = v
	f.dirty = dirty
	if echo && f.accessor != nil {
		acc := f.accessor
		t.enqueue(func() { acc.WriteValue(v) })
	}
	t.revalidate(f.node, true)
	t.mu.Unlock()
	t.drain()
	return nil
}
