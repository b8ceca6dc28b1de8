package report

import "errors"

// ErrPathNotFound is returned by Report.Get for a path the report does not cover.
var ErrPathNotFound = errors.New("report: path not found")
