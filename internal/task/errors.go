package task

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a task id does not resolve.
var ErrNotFound = errors.New("task not found")

// RequestError reports a response that arrived with a non-success status.
// Message carries the server's error string when the body had one,
// otherwise the status code stands in.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsRequestError reports whether err is (or wraps) a RequestError.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
