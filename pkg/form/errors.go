package form

import "errors"

var (
	// ErrPathNotFound is returned when a dotted path does not name a control in the tree.
	ErrPathNotFound = errors.New("form: control path not found")

	// ErrPending is returned by Submit while asynchronous checks are still running.
	ErrPending = errors.New("form: validation pending")

	// ErrClosed is returned when mutating a form that has been closed.
	ErrClosed = errors.New("form: closed")

	// ErrDuplicateChild is raised when two children of a group share a name.
	ErrDuplicateChild = errors.New("form: duplicate child name")

	// ErrAlreadyAttached is raised when a control that already has a parent is adopted again.
	ErrAlreadyAttached = errors.New("form: control already attached to a parent")

	// ErrIndexOutOfRange is returned by Array operations with an invalid index.
	ErrIndexOutOfRange = errors.New("form: array index out of range")
)
