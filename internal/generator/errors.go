package generator

import "errors"

// Classified generator failures. ErrTimeout covers network-level failures,
// context deadlines and HTTP 504 alike: callers substitute placeholder
// content for all of them instead of failing the request. ErrEmptyResponse
// covers a 2xx response whose body is empty, unparsable, or carries zero
// questions, and gets the same placeholder treatment.
var (
	ErrTimeout       = errors.New("generator: request timed out")
	ErrEmptyResponse = errors.New("generator: empty or unparsable response")
	ErrNotFound      = errors.New("generator: content not found")
	ErrBusy          = errors.New("generator: service busy, try again later")
	ErrUnsupported   = errors.New("generator: unsupported content")
	ErrInternal      = errors.New("generator: internal service error")
	ErrNotConfigured = errors.New("generator: no endpoint configured")
)

// IsFallback reports whether err is a failure class that should be recovered
// locally with placeholder questions rather than surfaced to the caller.
func IsFallback(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrEmptyResponse)
}
