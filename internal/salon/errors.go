package salon

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork indicates the salon service could not be reached.
	ErrNetwork = errors.New("salon service unreachable")

	// ErrTimeout indicates a request exceeded the configured timeout.
	// It wraps ErrNetwork.
	ErrTimeout = fmt.Errorf("%w: request timed out", ErrNetwork)

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("salon retry attempts exhausted")

	// ErrInvalidResponse indicates a successful response whose body could
	// not be decoded.
	ErrInvalidResponse = errors.New("invalid salon response")
)

// ServerError is a non-2xx response from the salon service.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("salon service returned status %d", e.Status)
	}
	return fmt.Sprintf("salon service returned status %d: %s", e.Status, e.Body)
}

// StatusOf extracts the HTTP status from a ServerError anywhere in err's chain.
func StatusOf(err error) (int, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}

// IsNetwork reports whether err is a transport-level failure, timeouts included.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
