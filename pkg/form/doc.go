// Package form implements reactive form controls: fields, groups and arrays
// that carry validators, validate on every change and aggregate their
// status bottom-up.
//
// # Controls
//
// A Field holds one value. A Group holds named children in declaration
// order; an Array holds children named by index. Each control owns a
// validator set keyed by validator id, so attaching the same validator twice
// is a no-op and removing one drops only the codes it contributed.
//
//	period := form.NewGroup("period", []form.Control{
//		form.NewField("fromDate", nil, form.WithValidators(validator.Required())),
//		form.NewField("toDate", nil, form.WithValidators(validator.Required())),
//	}, form.WithValidators(validator.DateOrder("fromDate", "toDate")), form.WithDisabled())
//
//	root := form.NewGroup("lesson", []form.Control{title, completed, period})
//	f := form.New(root, form.WithLogger(log))
//	defer f.Close()
//
// # Status
//
// A disabled control reports StatusDisabled and no errors. Failing sync
// validators make a control invalid and cancel its async checks. Otherwise a
// pending async check makes it pending, and settled async outcomes decide
// between invalid and valid. A group is also invalid when any enabled child
// is invalid, and pending when any enabled child is pending.
//
// # Async validation
//
// Async validators run only for controls bound to a Form. Every value change
// restarts the validator's settle timer; only the check started by the
// latest change can apply its result. Close cancels pending timers and
// in-flight checks and waits for them, so nothing is applied to a torn-down
// form.
//
// # Events
//
// OnChange listeners receive value and status events in the order changes
// happen. Events are delivered outside the form lock by a single drainer, so
// a listener may mutate the form, for example enabling a group when a
// checkbox turns on.
//
// # Errors
//
// Unknown paths are programming errors: Get returns ErrPathNotFound and
// Control panics with it. Submit returns ErrPending while checks run and
// validator.ValidationErrors when the form is invalid.
package form
