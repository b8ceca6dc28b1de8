package report

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Entry is the validation state of one control.
// Outcomes is empty for a control without errors, never nil.
type Entry struct {
	Path     string
	Outcomes []validator.Outcome
}

// Report is a flattened, path-keyed view of a control tree's errors.
// Entries are parent-first in declaration order and cover every control.
type Report struct {
	Entries []Entry
}

// Collect walks root and records one entry per control. The root is
// recorded as "root" and descendants as "root.<name>...", array items by index.
func Collect(root form.Control) Report {
	var r Report
	form.Walk(root, func(path string, c form.Control) {
		outcomes := []validator.Outcome{}
		if errs := c.Errors(); !errs.Passed() {
			outcomes = append(outcomes, errs)
		}
		r.Entries = append(r.Entries, Entry{Path: path, Outcomes: outcomes})
	})
	return r
}

// Get returns the outcomes recorded for path. A path missing from the
// report is a programming error and yields ErrPathNotFound.
func (r Report) Get(path string) ([]validator.Outcome, error) {
	i := slices.IndexFunc(r.Entries, func(e Entry) bool { return e.Path == path })
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	return r.Entries[i].Outcomes, nil
}

// Paths returns every recorded path in report order.
func (r Report) Paths() []string {
	paths := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		paths = append(paths, e.Path)
	}
	return paths
}

// Map returns the report keyed by path.
func (r Report) Map() map[string][]validator.Outcome {
	m := make(map[string][]validator.Outcome, len(r.Entries))
	for _, e := range r.Entries {
		m[e.Path] = e.Outcomes
	}
	return m
}

// HasErrors reports whether any control recorded an outcome.
func (r Report) HasErrors() bool {
	return slices.ContainsFunc(r.Entries, func(e Entry) bool { return len(e.Outcomes) > 0 })
}

// ValidationErrors flattens the report into one error per code per path,
// suitable for returning from a submit handler.
func ValidationErrors(r Report) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, e := range r.Entries {
		for _, o := range e.Outcomes {
			errs = append(errs, validator.OutcomeErrors(e.Path, o)...)
		}
	}
	return errs
}

// CollectWarnings returns the warnings of every enabled control in
// declaration order.
func CollectWarnings(root form.Control) []string {
	var warnings []string
	form.Walk(root, func(_ string, c form.Control) {
		if c.Enabled() {
			warnings = append(warnings, c.Warnings()...)
		}
	})
	return warnings
}
