// Package binder decodes HTTP request bodies into input structs.
//
// JSON handles application/json bodies strictly: unknown fields, trailing
// data and bodies over DefaultMaxJSONSize fail with ErrFailedToParseJSON.
// Form handles url-encoded and multipart bodies through `form:"name"` tags,
// accepting basic kinds, pointers and slices. Bind dispatches on the
// Content-Type header.
//
//	type Input struct {
//		Title     string `json:"title" form:"title"`
//		Completed bool   `json:"completed" form:"completed"`
//	}
//
//	var in Input
//	if err := binder.Bind(r, &in); err != nil {
//		// 400
//	}
//
// Checkbox values "on", "yes" and "1" bind to true. Surrounding whitespace
// is trimmed from every string field.
package binder
