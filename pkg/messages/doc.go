// Package messages turns validation reports into display text.
//
// A catalog maps an error code on a control path to a template. Templates use
// %{name} placeholders filled from the error payload: a list of missing
// names is exposed as %{items}, a map payload exposes each key, and list
// values are joined with ", ".
//
//	messages:
//	  - path: root.nickname
//	    code: nicknameAlreadyExists
//	    text: "Nickname already exists. You could use: %{suggestions}"
//
// Render walks a report.Report in order and skips codes the catalog does not
// know, so adding a validator never breaks rendering.
package messages
