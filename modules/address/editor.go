package address

import (
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/report"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Editor edits an Address through an inner form of street and city
// fields. Attached to a field it acts as the field's value accessor.
type Editor struct {
	form   *form.Form
	Street *form.Field
	City   *form.Field

	mu       sync.Mutex
	onChange func(any)

	writing     atomic.Bool
	required    atomic.Bool
	unsubscribe func()
}

// NewEditor builds the inner form. opts are applied to it.
func NewEditor(opts ...form.Option) *Editor {
	e := &Editor{
		Street: form.NewField(AttrStreet, "", form.WithNonNullable()),
		City:   form.NewField(AttrCity, "", form.WithNonNullable()),
	}
	e.form = form.New(form.NewGroup(form.RootPath, []form.Control{e.Street, e.City}), opts...)
	e.unsubscribe = e.form.Root().OnChange(e.forward)
	return e
}

// forward reports inner edits to the owning field. Writes coming from the
// owning field are not echoed back.
func (e *Editor) forward(ev form.Event) {
	if ev.Kind != form.EventValueChanged || e.writing.Load() {
		return
	}
	e.mu.Lock()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn(e.Value())
	}
}

// Form returns the inner form.
func (e *Editor) Form() *form.Form { return e.form }

// Value returns the address currently shown by the editor.
func (e *Editor) Value() Address {
	v := e.form.Root().RawValue()
	street, _ := v[AttrStreet].(string)
	city, _ := v[AttrCity].(string)
	return Address{Street: street, City: city}
}

// Edit changes street and city as a user would.
func (e *Editor) Edit(a Address) error {
	return e.form.Root().Patch(map[string]any{AttrStreet: a.Street, AttrCity: a.City})
}

// Errors reports the inner form by path.
func (e *Editor) Errors() report.Report {
	return report.Collect(e.form.Root())
}

// Required reports whether the inner fields have been made required.
func (e *Editor) Required() bool {
	return e.required.Load()
}

// WriteValue shows v in the editor. Anything that is not an address
// clears it.
func (e *Editor) WriteValue(v any) {
	e.writing.Store(true)
	defer e.writing.Store(false)

	a, ok := fromValue(v)
	if !ok {
		_ = e.form.Root().Reset(nil)
		return
	}
	_ = e.form.Root().Reset(map[string]any{AttrStreet: a.Street, AttrCity: a.City})
}

func (e *Editor) RegisterOnChange(fn func(any)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

func (e *Editor) SetDisabledState(disabled bool) {
	if disabled {
		e.form.Root().Disable()
	} else {
		e.form.Root().Enable()
	}
}

// Validate makes street and city required the first time the owning
// field carries the addressRequired validator. It never fails itself; the
// owning field's own validators judge the address.
func (e *Editor) Validate(c validator.Control) validator.Outcome {
	if c.HasValidator(IDAddressRequired) && e.required.CompareAndSwap(false, true) {
		e.Street.AddValidators(validator.Required())
		e.City.AddValidators(validator.Required())
	}
	return nil
}

// Close detaches the editor from its inner form and closes it.
func (e *Editor) Close() {
	e.unsubscribe()
	e.form.Close()
}
