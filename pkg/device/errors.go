package device

import "errors"

// Sentinel errors returned by every backend. Callers classify with errors.Is.
var (
	ErrNotFound     = errors.New("no smart-home device with that id or name")
	ErrTimeout      = errors.New("smart-home backend timed out")
	ErrNotConnected = errors.New("smart-home backend not configured")
	ErrUnsupported  = errors.New("device cannot be switched")
)
