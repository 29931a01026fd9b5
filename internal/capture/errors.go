package capture

import (
	"errors"
	"fmt"
)

var (
	ErrNoPath     = errors.New("no destination path set")
	ErrNoEndpoint = errors.New("no endpoint URL set")
	// ErrEmptyContent is returned for blank content; the session ignores it silently.
	ErrEmptyContent = errors.New("nothing to submit")
	ErrInvalidMode  = errors.New("invalid mode")
)

// SinkError wraps a delivery failure. The underlying error is opaque to the session.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return fmt.Sprintf("delivery failed: %v", e.Err) }
func (e *SinkError) Unwrap() error { return e.Err }
