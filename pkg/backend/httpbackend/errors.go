package httpbackend

import "errors"

var (
	ErrMissingCandidate = errors.New("httpbackend: candidate is required")
	ErrInvalidBaseURL   = errors.New("httpbackend: invalid base url")
	ErrUnexpectedStatus = errors.New("httpbackend: unexpected status")
	ErrDecodeResponse   = errors.New("httpbackend: failed to decode response")
)
