package tmdb

import "fmt"

// NetworkError reports a request that did not produce a 2xx response:
// transport failures, timeouts, cancellation, and error statuses.
type NetworkError struct {
	Op         string // "popular", "details", ...
	StatusCode int    // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ResponseFormatError reports a 2xx body that could not be decoded or was
// missing a required field.
type ResponseFormatError struct {
	Op  string
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("tmdb: %s: bad response: %v", e.Op, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }
