package model

import "errors"

var (
	// ErrUpstream covers every failure talking to the recipe API:
	// network errors, timeouts, non-2xx responses, bad payloads.
	// Callers surface it as an opaque 500 with no upstream detail.
	ErrUpstream = errors.New("upstream recipe API failure")
)
