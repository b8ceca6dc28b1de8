package form

import "github.com/dmitrymomot/formkit/pkg/validator"

// AccessorValidatorID is the validator id under which an AccessorValidator is attached.
const AccessorValidatorID = "accessor"

// ValueAccessor bridges a field and an editor that owns the field's value
// representation, such as a composite address widget.
type ValueAccessor interface {
	// WriteValue pushes a model value into the editor.
	WriteValue(v any)
	// RegisterOnChange gives the editor the callback to report edits.
	RegisterOnChange(fn func(v any))
	// SetDisabledState mirrors the field's disabled flag.
	SetDisabledState(disabled bool)
}

// AccessorValidator is implemented by accessors that validate their own
// inner state. Validate runs under the owning form's lock, so it must not
// call back into that form.
type AccessorValidator interface {
	Validate(c validator.Control) validator.Outcome
}

// Attach binds acc to the field. The editor receives the current value and
// disabled state; edits it reports become field values without being
// written back to it. An accessor implementing AccessorValidator is
// attached as the validator AccessorValidatorID.
func (f *Field) Attach(acc ValueAccessor) {
	t := f.t
	t.mu.Lock()
	f.accessor = acc
	v, disabled := f.val, f.disabled
	if av, ok := acc.(AccessorValidator); ok {
		f.validators = appendValidators(f.validators, []validator.Validator{{
			ID:    AccessorValidatorID,
			Check: av.Validate,
		}})
	}
	t.mu.Unlock()

	acc.WriteValue(v)
	acc.SetDisabledState(disabled)
	acc.RegisterOnChange(func(v any) {
		_ = f.set(v, false, true)
	})

	f.mutate(func() {})
}
