// Package report flattens a form control tree into a path-keyed list of
// validation outcomes.
//
// Collect visits every control, parent-first in declaration order, and
// records one entry per path even when the control has no errors, so the
// report doubles as an inventory of the tree:
//
//	r := report.Collect(f.Root())
//	outs, err := r.Get("root.period")
//
// CollectWarnings gathers the non-blocking warnings of enabled fields.
// ValidationErrors converts a report into validator.ValidationErrors.
package report
