// Package formkit is a toolkit for reactive, server-side form validation.
//
// A form is a tree of controls: fields, groups and arrays, each with its
// own validators. Changing a value revalidates the control and its
// ancestors, reports value and status events, and schedules debounced
// async checks such as uniqueness lookups against a backend.
//
// Layout:
//
//   - pkg/form: controls, status, events and the async pipeline
//   - pkg/validator: outcomes and the built-in rules
//   - pkg/report, pkg/messages: error collection and display text
//   - pkg/backend: the external configuration protocol, in memory,
//     on Redis and over HTTP
//   - modules/lesson, modules/address, modules/profile: sample forms
//   - modules/api, cmd/formkit: the HTTP API and the command line
//
// Basic usage:
//
//	title := form.NewField("title", "", form.WithValidators(validator.Required()))
//	f := form.New(form.NewGroup(form.RootPath, []form.Control{title}))
//	defer f.Close()
//
//	_ = title.SetValue("Lesson 1")
//	if err := f.Submit(); err != nil {
//		// validator.ValidationErrors listing failing codes by path
//	}
package formkit
