package cache

import "errors"

// Sentinel errors for store operations.
var (
	// ErrCorrupt is returned when a stored value cannot be decoded.
	ErrCorrupt = errors.New("corrupt entry")

	// ErrUnavailable is returned when a remote backend cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)
