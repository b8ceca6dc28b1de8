// Package lesson is the validations and warnings sample: a lesson with a
// required title, an optional completion period whose dates must be in
// order, and a nickname and username checked for uniqueness against a
// backend.Reader.
//
// The period is disabled, and left out of the form value, until the
// completed flag is set:
//
//	l := lesson.New(lesson.Config{Reader: backend.NewMemory()})
//	defer l.Close()
//	_ = l.Completed.SetValue(true)
//	_ = l.FromDate.SetValue(from)
//
// Errors render through Catalog, e.g. "To Date must be after From Date" or
// "Nickname already exists. You could use: pippo123, pippo_bis". A username
// shorter than UsernameMinLength produces a warning, never an error.
//
// Service exposes the same form over HTTP for clients that validate
// server-side.
package lesson
