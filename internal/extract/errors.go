package extract

import (
	"fmt"
	"strconv"
	"time"
)

// TransportError indicates the extraction call failed to complete: the
// request never reached the API, or the API answered with a non-2xx status.
type TransportError struct {
	StatusCode int // 0 when the request itself failed
	RetryAfter time.Duration
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("extraction transport failure: %v", e.Err)
	}
	return fmt.Sprintf("extraction API error (status %d): %v", e.StatusCode, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// parseRetryAfterHeader parses a Retry-After header value into a duration.
// Returns 0 if the value is empty or not a valid integer.
func parseRetryAfterHeader(val string) time.Duration {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
