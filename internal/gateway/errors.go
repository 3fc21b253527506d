package gateway

import "errors"

// Sentinel errors returned by the client.
var (
	// ErrOffline wraps transport-level failures: the remote board could
	// not be reached at all.
	ErrOffline = errors.New("remote board offline")

	// ErrBadPayload indicates the remote response could not be parsed
	// into a board in either representation.
	ErrBadPayload = errors.New("malformed board payload")
)
